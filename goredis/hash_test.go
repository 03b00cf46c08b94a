package goredis

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/wippyai/redis-codec/casing"
	"github.com/wippyai/redis-codec/transcoder"
)

type hashLevel int

const (
	levelFree hashLevel = iota
	levelPro
)

type hashUser struct {
	ID     uuid.UUID
	Name   string
	Age    int
	Email  *string
	Level  hashLevel
	Tags   []string `redis:"tags,json"`
	Joined time.Time
}

func newUserHash(t *testing.T) (*Hash[hashUser], *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := transcoder.NewCompiler()
	if err := c.RegisterType(reflect.TypeOf(hashLevel(0)),
		transcoder.Variants("Free", "Pro"),
		transcoder.RenameAll(casing.RuleLower)); err != nil {
		t.Fatalf("register level: %v", err)
	}
	if err := c.RegisterType(reflect.TypeOf(hashUser{}),
		transcoder.RenameAll(casing.RuleSnake)); err != nil {
		t.Fatalf("register user: %v", err)
	}

	h, err := NewHash[hashUser](Options{Client: client, KeyPrefix: "user", Compiler: c})
	if err != nil {
		t.Fatalf("NewHash failed: %v", err)
	}
	return h, mr
}

func TestHash_SaveLoad(t *testing.T) {
	h, _ := newUserHash(t)
	ctx := context.Background()

	email := "ada@example.com"
	in := hashUser{
		ID:     uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		Name:   "ada",
		Age:    36,
		Email:  &email,
		Level:  levelPro,
		Tags:   []string{"math", "engines"},
		Joined: time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC),
	}
	if err := h.Save(ctx, "1", in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := h.Load(ctx, "1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.ID != in.ID || out.Name != in.Name || out.Age != in.Age || out.Level != in.Level {
		t.Errorf("loaded = %+v", out)
	}
	if out.Email == nil || *out.Email != email {
		t.Errorf("Email = %v, want %q", out.Email, email)
	}
	if !reflect.DeepEqual(out.Tags, in.Tags) {
		t.Errorf("Tags = %v, want %v", out.Tags, in.Tags)
	}
	if !out.Joined.Equal(in.Joined) {
		t.Errorf("Joined = %s, want %s", out.Joined, in.Joined)
	}
}

func TestHash_FieldLayout(t *testing.T) {
	h, mr := newUserHash(t)
	ctx := context.Background()

	in := hashUser{
		ID:     uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		Name:   "ada",
		Age:    36,
		Level:  levelPro,
		Joined: time.Unix(0, 0).UTC(),
	}
	if err := h.Save(ctx, "1", in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// fields land under their resolved wire names, readable by HGET
	if got := mr.HGet("user:1", "id"); got != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("id = %q, want the uuid text form", got)
	}
	if got := mr.HGet("user:1", "name"); got != "ada" {
		t.Errorf("name = %q, want ada", got)
	}
	if got := mr.HGet("user:1", "level"); got != "pro" {
		t.Errorf("level = %q, want pro", got)
	}
	if got := mr.HGet("user:1", "joined"); got != "1970-01-01T00:00:00Z" {
		t.Errorf("joined = %q", got)
	}

	// the nil optional writes no field at all
	keys, _ := mr.HKeys("user:1")
	for _, k := range keys {
		if k == "email" {
			t.Error("nil Email should not produce a field")
		}
	}
}

func TestHash_LoadMissing(t *testing.T) {
	h, _ := newUserHash(t)

	_, err := h.Load(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestHash_ExistsDelete(t *testing.T) {
	h, _ := newUserHash(t)
	ctx := context.Background()

	if err := h.Save(ctx, "1", hashUser{Name: "x", Joined: time.Unix(0, 0)}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ok, err := h.Exists(ctx, "1")
	if err != nil || !ok {
		t.Errorf("Exists = %v, %v, want true", ok, err)
	}

	if err := h.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	ok, _ = h.Exists(ctx, "1")
	if ok {
		t.Error("record should be gone after Delete")
	}

	// deleting again is not an error
	if err := h.Delete(ctx, "1"); err != nil {
		t.Errorf("repeat Delete failed: %v", err)
	}
}

func TestHash_SaveTTL(t *testing.T) {
	h, mr := newUserHash(t)
	ctx := context.Background()

	if err := h.SaveTTL(ctx, "1", hashUser{Name: "x", Joined: time.Unix(0, 0)}, time.Minute); err != nil {
		t.Fatalf("SaveTTL failed: %v", err)
	}
	if ttl := mr.TTL("user:1"); ttl != time.Minute {
		t.Errorf("TTL = %s, want 1m", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := h.Load(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired record should be gone, got %v", err)
	}
}

func TestHash_Replace(t *testing.T) {
	h, mr := newUserHash(t)
	ctx := context.Background()

	email := "old@example.com"
	if err := h.Save(ctx, "1", hashUser{Name: "x", Email: &email, Joined: time.Unix(0, 0)}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Save keeps the stale optional; Replace drops it
	if err := h.Save(ctx, "1", hashUser{Name: "y", Joined: time.Unix(0, 0)}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if got := mr.HGet("user:1", "email"); got != email {
		t.Errorf("Save should leave stale fields, email = %q", got)
	}

	if err := h.Replace(ctx, "1", hashUser{Name: "z", Joined: time.Unix(0, 0)}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	keys, _ := mr.HKeys("user:1")
	for _, k := range keys {
		if k == "email" {
			t.Error("Replace should drop absent fields")
		}
	}
	if got := mr.HGet("user:1", "name"); got != "z" {
		t.Errorf("name = %q, want z", got)
	}
}

func TestHash_Batch(t *testing.T) {
	h, _ := newUserHash(t)
	ctx := context.Background()

	items := map[string]hashUser{
		"1": {Name: "ada", Joined: time.Unix(0, 0)},
		"2": {Name: "grace", Joined: time.Unix(0, 0)},
	}
	if err := h.SaveMany(ctx, items); err != nil {
		t.Fatalf("SaveMany failed: %v", err)
	}

	got, err := h.LoadMany(ctx, []string{"1", "2", "ghost"})
	if err != nil {
		t.Fatalf("LoadMany failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadMany returned %d records, want 2", len(got))
	}
	if got["1"].Name != "ada" || got["2"].Name != "grace" {
		t.Errorf("records = %+v", got)
	}
	if _, ok := got["ghost"]; ok {
		t.Error("missing id should be absent from the result")
	}
}

func TestHash_KeyPrefix(t *testing.T) {
	h, _ := newUserHash(t)

	if k := h.Key("7"); k != "user:7" {
		t.Errorf("Key = %q, want user:7", k)
	}
}

func TestNewHash_RejectsNonRecord(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	if _, err := NewHash[int](Options{Client: client}); err == nil {
		t.Error("NewHash[int] should fail")
	}
}

func TestNewHash_RequiresClient(t *testing.T) {
	if _, err := NewHash[hashUser](Options{}); err == nil {
		t.Error("NewHash without client should fail")
	}
}
