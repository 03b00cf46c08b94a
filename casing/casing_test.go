package casing

import (
	"errors"
	"strings"
	"testing"

	codecerr "github.com/wippyai/redis-codec/errors"
)

func TestRule_Apply(t *testing.T) {
	tests := []struct {
		rule Rule
		in   string
		want string
	}{
		{RulePascal, "my_field", "MyField"},
		{RuleCamel, "my_field", "myField"},
		{RuleSnake, "MyFieldName", "my_field_name"},
		{RuleKebab, "MyFieldName", "my-field-name"},
		{RuleUpper, "MyField", "MYFIELD"},
		{RuleLower, "MyField", "myfield"},
		{RuleIdentity, "MyField", "MyField"},
		{RuleIdentity, "weird_Mixed-Name", "weird_Mixed-Name"},

		// acronym runs split before the trailing word
		{RuleSnake, "HTTPServer", "http_server"},
		{RuleKebab, "ParseURL", "parse-url"},
		{RulePascal, "HTTPServer", "HttpServer"},
		{RuleCamel, "HTTPServer", "httpServer"},

		// digits bind to the preceding word
		{RuleSnake, "Field2Name", "field2_name"},
		{RuleCamel, "utf8_payload", "utf8Payload"},

		// single-word inputs
		{RuleSnake, "Name", "name"},
		{RulePascal, "name", "Name"},
		{RuleSnake, "A", "a"},
		{RulePascal, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.rule.String()+"/"+tt.in, func(t *testing.T) {
			if got := tt.rule.Apply(tt.in); got != tt.want {
				t.Errorf("%s.Apply(%q) = %q, want %q", tt.rule, tt.in, got, tt.want)
			}
		})
	}
}

func TestRule_Apply_Idempotent(t *testing.T) {
	inputs := []string{"MyFieldName", "already_snake", "already-kebab", "HTTPServer", "a"}

	for _, in := range inputs {
		snake := RuleSnake.Apply(in)
		if again := RuleSnake.Apply(snake); again != snake {
			t.Errorf("snake_case not idempotent: %q -> %q -> %q", in, snake, again)
		}
		kebab := RuleKebab.Apply(in)
		if again := RuleKebab.Apply(kebab); again != kebab {
			t.Errorf("kebab-case not idempotent: %q -> %q -> %q", in, kebab, again)
		}
	}
}

func TestParseRule(t *testing.T) {
	for i, token := range Rules() {
		rule, err := ParseRule(token)
		if err != nil {
			t.Fatalf("ParseRule(%q) error: %v", token, err)
		}
		if rule.String() != token {
			t.Errorf("ParseRule(%q).String() = %q", token, rule.String())
		}
		if rule == RuleIdentity {
			t.Errorf("token %d (%q) parsed to identity", i, token)
		}
	}
}

func TestParseRule_Unknown(t *testing.T) {
	_, err := ParseRule("Train-Case")
	if err == nil {
		t.Fatal("expected error for unknown rule token")
	}

	var ce *codecerr.Error
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if ce.Kind != codecerr.KindInvalidRule {
		t.Errorf("Kind = %v, want %v", ce.Kind, codecerr.KindInvalidRule)
	}
	if ce.Phase != codecerr.PhaseCompile {
		t.Errorf("Phase = %v, want %v", ce.Phase, codecerr.PhaseCompile)
	}

	// Message names the bad token and lists every accepted rule
	msg := err.Error()
	if !strings.Contains(msg, "Train-Case") {
		t.Errorf("message %q missing offending token", msg)
	}
	for _, token := range Rules() {
		if !strings.Contains(msg, token) {
			t.Errorf("message %q missing valid token %q", msg, token)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		rule     Rule
		override string
		want     string
	}{
		{"override beats rule", "ExampleField", RuleSnake, "exfield", "exfield"},
		{"override beats identity", "ExampleField", RuleIdentity, "exfield", "exfield"},
		{"rule applies without override", "ExampleField", RuleSnake, "", "example_field"},
		{"no directive is identity", "ExampleField", RuleIdentity, "", "ExampleField"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.declared, tt.rule, tt.override); got != tt.want {
				t.Errorf("Resolve(%q, %s, %q) = %q, want %q",
					tt.declared, tt.rule, tt.override, got, tt.want)
			}
		})
	}
}

func TestRule_String(t *testing.T) {
	if RuleIdentity.String() != "identity" {
		t.Errorf("RuleIdentity.String() = %q", RuleIdentity.String())
	}
	if RuleSnake.String() != "snake_case" {
		t.Errorf("RuleSnake.String() = %q", RuleSnake.String())
	}
	if Rule(99).String() != "identity" {
		t.Errorf("out of range rule String() = %q", Rule(99).String())
	}
}
