// Package blob provides encode/decode codecs for fields stored as a
// single opaque wire argument. Struct fields opt in through a tag
// directive naming a registered codec, e.g. `redis:"profile,json"`.
package blob

import (
	"sort"
	"sync"
)

// Codec encodes and decodes a field value to and from one binary argument.
type Codec interface {
	// Marshal serializes v into bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into v (must be a pointer).
	Unmarshal(data []byte, v any) error
	// Name returns the codec identifier used in tags and diagnostics.
	Name() string
}

var (
	mu     sync.RWMutex
	codecs = map[string]Codec{
		"json":    JSON{},
		"msgpack": MsgPack{},
		"yaml":    YAML{},
	}
)

// Register makes a codec available under its Name. Registering a name
// twice replaces the earlier codec.
func Register(c Codec) {
	mu.Lock()
	defer mu.Unlock()
	codecs[c.Name()] = c
}

// Lookup returns the codec registered under name
func Lookup(name string) (Codec, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := codecs[name]
	return c, ok
}

// Names returns the registered codec names in sorted order
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(codecs))
	for n := range codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
