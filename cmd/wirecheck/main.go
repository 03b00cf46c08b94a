package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/wippyai/redis-codec/casing"
)

func main() {
	var (
		ruleName    = flag.String("rule", "", "Case rule to apply (lowercase, UPPERCASE, PascalCase, camelCase, snake_case, kebab-case)")
		all         = flag.Bool("all", false, "Show every rule for each name")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	names := flag.Args()
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: wirecheck -rule snake_case Name [Name ...]")
		fmt.Fprintln(os.Stderr, "       wirecheck -all Name [Name ...]")
		fmt.Fprintln(os.Stderr, "       wirecheck -i  (interactive mode)")
		os.Exit(1)
	}

	if *all {
		showAll(names)
		return
	}

	collisions, err := check(*ruleName, names)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if collisions {
		os.Exit(1)
	}
}

// showAll prints every rule's rendering of each name
func showAll(names []string) {
	for _, name := range names {
		fmt.Printf("%s\n", name)
		for _, token := range casing.Rules() {
			rule, _ := casing.ParseRule(token)
			fmt.Printf("  %-12s %s\n", token, rule.Apply(name))
		}
		fmt.Println()
	}
}

// check prints each name's wire form under the rule and reports
// collisions, mirroring the duplicate detection done at registration.
func check(ruleName string, names []string) (collisions bool, err error) {
	rule := casing.RuleIdentity
	if ruleName != "" {
		rule, err = casing.ParseRule(ruleName)
		if err != nil {
			return false, err
		}
	}

	seen := make(map[string]string, len(names))
	for _, name := range names {
		wire := rule.Apply(name)
		fmt.Printf("%-24s -> %s\n", name, wire)
		if first, dup := seen[wire]; dup {
			fmt.Printf("  collision: %q claimed by both %s and %s\n", wire, first, name)
			collisions = true
			continue
		}
		seen[wire] = name
	}
	return collisions, nil
}
