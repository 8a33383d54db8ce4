package main

import (
	"fmt"
	"strings"
)

// validateEmail performs a deliberately shallow check: one "@" separating a
// non-empty local part from a domain that contains a dot. Slack does the real
// validation when the address is looked up.
func validateEmail(input string) error {
	local, domain, ok := strings.Cut(input, "@")
	if !ok || local == "" || domain == "" {
		return fmt.Errorf("invalid email %q: expected local@domain", input)
	}
	if !strings.Contains(domain, ".") {
		return fmt.Errorf("invalid email %q: domain has no dot", input)
	}
	return nil
}
