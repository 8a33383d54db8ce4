// Package roster picks joke-duty members from the configured roster.
package roster

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"
)

// Picker selects members uniformly at random.
type Picker struct {
	rng *rand.Rand
}

// NewPicker returns a Picker backed by src. A nil src uses the shared
// global generator; tests pass a seeded source for determinism.
func NewPicker(src rand.Source) *Picker {
	if src == nil {
		return &Picker{}
	}
	return &Picker{rng: rand.New(src)}
}

func (p *Picker) intn(n int) int {
	if p.rng != nil {
		return p.rng.Intn(n)
	}
	return rand.Intn(n)
}

// Select returns one uniformly-random member of roster not present in
// exclude. The second return is false when no member is eligible.
func (p *Picker) Select(roster []string, exclude map[string]bool) (string, bool) {
	eligible := make([]string, 0, len(roster))
	for _, m := range roster {
		if !exclude[m] {
			eligible = append(eligible, m)
		}
	}
	if len(eligible) == 0 {
		return "", false
	}
	return eligible[p.intn(len(eligible))], true
}

// Confirmer asks the user a yes/no question. It is injected wherever a
// prompt occurs so the reroll and config flows stay testable.
type Confirmer interface {
	Confirm(prompt string) bool
}

// StdinConfirmer prompts on out and accepts a "y" line on in,
// case-insensitively. Anything else, including read errors, declines.
type StdinConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdinConfirmer builds a Confirmer over the given streams.
func NewStdinConfirmer(in io.Reader, out io.Writer) *StdinConfirmer {
	return &StdinConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints the prompt and reads one line.
func (c *StdinConfirmer) Confirm(prompt string) bool {
	fmt.Fprintln(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
