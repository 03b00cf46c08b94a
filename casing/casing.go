// Package casing maps declared Go identifiers to wire names under a
// case rule. Rules are resolved once at plan compile time; conversion
// never happens per call.
package casing

import (
	"strings"
	"unicode"

	"github.com/wippyai/redis-codec/errors"
)

// Rule is a case convention applied to declared names. The zero value
// is the identity rule: the declared name is used verbatim.
type Rule uint8

const (
	RuleIdentity Rule = iota
	RuleLower
	RuleUpper
	RulePascal
	RuleCamel
	RuleSnake
	RuleKebab
)

var ruleTokens = []string{
	"lowercase",
	"UPPERCASE",
	"PascalCase",
	"camelCase",
	"snake_case",
	"kebab-case",
}

var tokenRules = map[string]Rule{
	"lowercase":  RuleLower,
	"UPPERCASE":  RuleUpper,
	"PascalCase": RulePascal,
	"camelCase":  RuleCamel,
	"snake_case": RuleSnake,
	"kebab-case": RuleKebab,
}

// Rules returns the accepted rule tokens in canonical order
func Rules() []string {
	out := make([]string, len(ruleTokens))
	copy(out, ruleTokens)
	return out
}

// ParseRule resolves a rule token. Unknown tokens are a configuration
// error listing every accepted token.
func ParseRule(token string) (Rule, error) {
	if r, ok := tokenRules[token]; ok {
		return r, nil
	}
	return RuleIdentity, errors.InvalidRule(token, Rules())
}

// String returns the rule token, or "identity" for the zero rule
func (r Rule) String() string {
	switch r {
	case RuleLower, RuleUpper, RulePascal, RuleCamel, RuleSnake, RuleKebab:
		return ruleTokens[r-1]
	default:
		return "identity"
	}
}

// Apply converts a declared name to its wire form under r
func (r Rule) Apply(name string) string {
	switch r {
	case RuleLower:
		return strings.ToLower(name)
	case RuleUpper:
		return strings.ToUpper(name)
	case RulePascal:
		return joinWords(splitWords(name), capitalize, capitalize, "")
	case RuleCamel:
		return joinWords(splitWords(name), strings.ToLower, capitalize, "")
	case RuleSnake:
		return joinWords(splitWords(name), strings.ToLower, strings.ToLower, "_")
	case RuleKebab:
		return joinWords(splitWords(name), strings.ToLower, strings.ToLower, "-")
	default:
		return name
	}
}

// Resolve returns the wire name for a declared name. An explicit
// override wins unconditionally; otherwise rule is applied.
func Resolve(declared string, rule Rule, override string) string {
	if override != "" {
		return override
	}
	return rule.Apply(declared)
}

// splitWords breaks an identifier into words. Boundaries are separator
// runes ('_' and '-', consumed), a transition from lowercase or digit
// to uppercase, and the end of an uppercase run that precedes a
// lowercase rune, so HTTPServer splits as HTTP + Server.
func splitWords(name string) []string {
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '-' {
			flush()
			continue
		}
		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := cur[len(cur)-1]
			if !unicode.IsUpper(prev) {
				flush()
			} else if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	return words
}

// capitalize uppercases the first rune and lowercases the rest, so an
// acronym word like HTTP renders as Http
func capitalize(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func joinWords(words []string, first, rest func(string) string, sep string) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			b.WriteString(sep)
			b.WriteString(rest(w))
		} else {
			b.WriteString(first(w))
		}
	}
	return b.String()
}
