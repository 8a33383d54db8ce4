package roster

import (
	"math/rand"
	"strings"
	"testing"
)

func TestSelectNeverYieldsExcluded(t *testing.T) {
	p := NewPicker(rand.NewSource(1))
	members := []string{"user_1", "user_2", "user_3"}
	exclude := map[string]bool{"user_2": true}

	for i := 0; i < 200; i++ {
		got, ok := p.Select(members, exclude)
		if !ok {
			t.Fatal("Select returned no member with eligible members remaining")
		}
		if exclude[got] {
			t.Fatalf("Select returned excluded member %q", got)
		}
	}
}

func TestSelectCoversAllEligible(t *testing.T) {
	p := NewPicker(rand.NewSource(42))
	members := []string{"user_1", "user_2", "user_3"}
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		got, ok := p.Select(members, nil)
		if !ok {
			t.Fatal("Select returned no member from a full roster")
		}
		seen[got] = true
	}
	for _, m := range members {
		if !seen[m] {
			t.Errorf("member %q never selected over 200 trials", m)
		}
	}
}

func TestSelectExhausted(t *testing.T) {
	p := NewPicker(rand.NewSource(1))

	t.Run("empty roster", func(t *testing.T) {
		if got, ok := p.Select(nil, nil); ok {
			t.Errorf("Select on empty roster returned %q", got)
		}
	})

	t.Run("all excluded", func(t *testing.T) {
		members := []string{"user_1", "user_2"}
		exclude := map[string]bool{"user_1": true, "user_2": true}
		if got, ok := p.Select(members, exclude); ok {
			t.Errorf("Select with full exclusion returned %q", got)
		}
	})
}

func TestStdinConfirmer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase y", "Y\n", true},
		{"padded y", "  y  \n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"word", "yes\n", false},
		{"eof", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			c := NewStdinConfirmer(strings.NewReader(tt.input), &out)
			if got := c.Confirm("Pick it?"); got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "Pick it?") {
				t.Errorf("prompt not written, got %q", out.String())
			}
		})
	}
}

func TestStdinConfirmerSequentialPrompts(t *testing.T) {
	// One reader must survive several prompts without losing buffered input.
	var out strings.Builder
	c := NewStdinConfirmer(strings.NewReader("n\nn\ny\n"), &out)

	want := []bool{false, false, true}
	for i, w := range want {
		if got := c.Confirm("again?"); got != w {
			t.Errorf("prompt %d = %v, want %v", i, got, w)
		}
	}
}
