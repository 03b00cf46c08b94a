package blob

import (
	"reflect"
	"testing"
)

type sample struct {
	Name  string   `json:"name" yaml:"name" msgpack:"name"`
	Count int      `json:"count" yaml:"count" msgpack:"count"`
	Tags  []string `json:"tags" yaml:"tags" msgpack:"tags"`
}

func TestCodecs_RoundTrip(t *testing.T) {
	in := sample{Name: "cache", Count: 3, Tags: []string{"a", "b"}}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, ok := Lookup(name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", name)
			}
			if c.Name() != name {
				t.Errorf("Name() = %q, registered as %q", c.Name(), name)
			}

			data, err := c.Marshal(in)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var out sample
			if err := c.Unmarshal(data, &out); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !reflect.DeepEqual(in, out) {
				t.Errorf("round trip = %+v, want %+v", out, in)
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, ok := Lookup("protobuf"); ok {
		t.Error("Lookup should not find an unregistered codec")
	}
}

func TestNames_Builtins(t *testing.T) {
	names := Names()
	want := map[string]bool{"json": true, "msgpack": true, "yaml": true}
	for _, n := range names {
		delete(want, n)
	}
	if len(want) != 0 {
		t.Errorf("missing builtin codecs: %v", want)
	}
}

type upperCodec struct{}

func (upperCodec) Marshal(v any) ([]byte, error)      { return []byte("X"), nil }
func (upperCodec) Unmarshal(data []byte, v any) error { return nil }
func (upperCodec) Name() string                       { return "upper" }

func TestRegister(t *testing.T) {
	Register(upperCodec{})
	c, ok := Lookup("upper")
	if !ok {
		t.Fatal("registered codec not found")
	}
	if c.Name() != "upper" {
		t.Errorf("Name() = %q", c.Name())
	}
}

func TestUnmarshal_Error(t *testing.T) {
	var out sample
	if err := (JSON{}).Unmarshal([]byte("{not json"), &out); err == nil {
		t.Error("expected JSON unmarshal error")
	}
	if err := (YAML{}).Unmarshal([]byte(":\n\t- bad"), &out); err == nil {
		t.Error("expected YAML unmarshal error")
	}
}
