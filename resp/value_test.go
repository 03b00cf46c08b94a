package resp

import (
	"strings"
	"testing"
)

func TestValue_Kinds(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		kind Kind
	}{
		{"null", Null(), KindNull},
		{"zero value is null", Value{}, KindNull},
		{"integer", Integer(42), KindInteger},
		{"simple", SimpleString("OK"), KindSimple},
		{"bulk", BulkString([]byte("hi")), KindBulk},
		{"bulk text", BulkText("hi"), KindBulk},
		{"verbatim", VerbatimString("txt", []byte("hi")), KindVerbatim},
		{"array", Array(Integer(1), Integer(2)), KindArray},
		{"map", Map(Pair{Key: BulkText("k"), Value: Integer(1)}), KindMap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.val.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestValue_Text(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want string
		ok   bool
	}{
		{"bulk", BulkText("hello"), "hello", true},
		{"simple", SimpleString("OK"), "OK", true},
		{"verbatim", VerbatimString("txt", []byte("note")), "note", true},
		{"integer", Integer(7), "", false},
		{"null", Null(), "", false},
		{"array", Array(), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.val.Text()
			if ok != tt.ok {
				t.Fatalf("Text() ok = %v, want %v", ok, tt.ok)
			}
			if ok && string(got) != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	if got := Integer(-5).Integer(); got != -5 {
		t.Errorf("Integer() = %d, want -5", got)
	}
	if got := SimpleString("PONG").Simple(); got != "PONG" {
		t.Errorf("Simple() = %q, want PONG", got)
	}
	if got := VerbatimString("mkd", []byte("x")).Format(); got != "mkd" {
		t.Errorf("Format() = %q, want mkd", got)
	}

	arr := Array(Integer(1), BulkText("two"))
	if items := arr.Items(); len(items) != 2 || items[1].Kind() != KindBulk {
		t.Errorf("Items() = %v", items)
	}

	m := Map(
		Pair{Key: BulkText("a"), Value: Integer(1)},
		Pair{Key: BulkText("b"), Value: Integer(2)},
	)
	pairs := m.Pairs()
	if len(pairs) != 2 {
		t.Fatalf("Pairs() len = %d, want 2", len(pairs))
	}
	if string(pairs[0].Key.Bytes()) != "a" || string(pairs[1].Key.Bytes()) != "b" {
		t.Error("Pairs() did not preserve entry order")
	}

	if !Null().IsNull() {
		t.Error("Null().IsNull() = false")
	}
	if Integer(0).IsNull() {
		t.Error("Integer(0).IsNull() = true")
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		val      Value
		contains []string
	}{
		{Null(), []string{"null"}},
		{Integer(12), []string{"integer", "12"}},
		{BulkText("hi"), []string{"bulk", `"hi"`}},
		{VerbatimString("txt", []byte("v")), []string{"verbatim", "txt"}},
		{Array(Integer(1)), []string{"array", "integer(1)"}},
		{Map(Pair{Key: BulkText("k"), Value: Integer(3)}), []string{"map", `"k"`, "integer(3)"}},
	}

	for _, tt := range tests {
		got := tt.val.String()
		for _, want := range tt.contains {
			if !strings.Contains(got, want) {
				t.Errorf("String() = %q, missing %q", got, want)
			}
		}
	}
}

func TestKind_String(t *testing.T) {
	if KindBulk.String() != "bulk" {
		t.Errorf("KindBulk.String() = %q", KindBulk.String())
	}
	if Kind(200).String() != "unknown" {
		t.Errorf("out of range kind = %q", Kind(200).String())
	}
}

func TestFromReply(t *testing.T) {
	tests := []struct {
		name  string
		reply any
		want  Value
	}{
		{"nil", nil, Null()},
		{"string", "hello", BulkText("hello")},
		{"bytes", []byte("raw"), BulkString([]byte("raw"))},
		{"int64", int64(9), Integer(9)},
		{"int", 9, Integer(9)},
		{"bool true", true, Integer(1)},
		{"bool false", false, Integer(0)},
		{"float", 1.5, BulkText("1.5")},
		{"array", []any{int64(1), "two"}, Array(Integer(1), BulkText("two"))},
		{"string slice", []string{"a", "b"}, Array(BulkText("a"), BulkText("b"))},
		{"passthrough", SimpleString("OK"), SimpleString("OK")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromReply(tt.reply)
			if err != nil {
				t.Fatalf("FromReply() error: %v", err)
			}
			if got.String() != tt.want.String() {
				t.Errorf("FromReply() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFromReply_StringMap(t *testing.T) {
	got, err := FromReply(map[string]string{"b": "2", "a": "1"})
	if err != nil {
		t.Fatalf("FromReply() error: %v", err)
	}
	if got.Kind() != KindMap {
		t.Fatalf("Kind = %v, want map", got.Kind())
	}
	pairs := got.Pairs()
	if len(pairs) != 2 {
		t.Fatalf("len = %d, want 2", len(pairs))
	}
	// Keys sorted for determinism
	if string(pairs[0].Key.Bytes()) != "a" || string(pairs[1].Key.Bytes()) != "b" {
		t.Errorf("pairs out of order: %s", got)
	}
}

func TestFromReply_Unsupported(t *testing.T) {
	_, err := FromReply(struct{ X int }{1})
	if err == nil {
		t.Fatal("expected error for unsupported reply type")
	}
}

func TestFromReply_NestedError(t *testing.T) {
	_, err := FromReply([]any{int64(1), struct{}{}})
	if err == nil {
		t.Fatal("expected error to propagate from nested element")
	}
}
