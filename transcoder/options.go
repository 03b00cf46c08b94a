package transcoder

import (
	"strings"

	"github.com/wippyai/redis-codec/casing"
	"github.com/wippyai/redis-codec/errors"
)

// tagKey is the struct tag consulted for field directives:
//
//	Field string `redis:"wire_name"`        rename override
//	Field string `redis:"-"`                skip both directions
//	Field Prefs  `redis:"prefs,json"`       store as one blob argument
//	Field Prefs  `redis:",msgpack"`         blob without rename
const tagKey = "redis"

// typeOptions holds type-level directives collected at registration
type typeOptions struct {
	rule          casing.Rule
	positional    bool
	variants      []string
	variantTokens map[string]string
}

// Option is a type-level directive passed to Register
type Option func(*typeOptions)

// RenameAll applies a case rule to every declared member name. An
// explicit rename override on a member still wins.
func RenameAll(rule casing.Rule) Option {
	return func(o *typeOptions) {
		o.rule = rule
	}
}

// Positional marks a struct type as a positional record: fields encode
// to a bare argument array in declaration order, without names.
func Positional() Option {
	return func(o *typeOptions) {
		o.positional = true
	}
}

// Variants declares the variant names of an enum type in declaration
// order; the ordinal of a variant is its index. The registered Go type
// must have an integer kind.
func Variants(names ...string) Option {
	return func(o *typeOptions) {
		o.variants = names
	}
}

// VariantToken overrides the wire token of one declared variant,
// winning over any RenameAll rule.
func VariantToken(declared, token string) Option {
	return func(o *typeOptions) {
		if o.variantTokens == nil {
			o.variantTokens = make(map[string]string)
		}
		o.variantTokens[declared] = token
	}
}

// fieldTag is one parsed field directive
type fieldTag struct {
	name  string
	codec string
	skip  bool
}

func parseTag(raw string, path []string) (fieldTag, error) {
	if raw == "-" {
		return fieldTag{skip: true}, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) > 2 {
		return fieldTag{}, errors.New(errors.PhaseCompile, errors.KindInvalidMapping).
			Path(path...).
			Detail("tag %q has too many options", raw).
			Build()
	}

	tag := fieldTag{name: parts[0]}
	if len(parts) == 2 {
		if parts[1] == "" {
			return fieldTag{}, errors.New(errors.PhaseCompile, errors.KindInvalidMapping).
				Path(path...).
				Detail("tag %q has an empty codec option", raw).
				Build()
		}
		tag.codec = parts[1]
	}
	return tag, nil
}
