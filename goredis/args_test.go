package goredis

import (
	"testing"
)

func TestArgs(t *testing.T) {
	type note struct {
		Title string
		Pin   int `redis:"-"`
	}

	args, err := Args(note{Title: "hello"})
	if err != nil {
		t.Fatalf("Args failed: %v", err)
	}
	if len(args) != 2 {
		t.Fatalf("len = %d, want 2", len(args))
	}
	if string(args[0].([]byte)) != "Title" || string(args[1].([]byte)) != "hello" {
		t.Errorf("args = %q %q", args[0], args[1])
	}
}

func TestAppendArgs(t *testing.T) {
	type note struct {
		Title string
	}

	args := []any{"hset", "note:1"}
	args, err := AppendArgs(args, note{Title: "hi"})
	if err != nil {
		t.Fatalf("AppendArgs failed: %v", err)
	}
	if len(args) != 4 {
		t.Fatalf("len = %d, want 4", len(args))
	}
	if args[0] != "hset" || args[1] != "note:1" {
		t.Errorf("command prefix lost: %v", args[:2])
	}
}
