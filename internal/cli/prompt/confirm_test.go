package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mbtools/pk3strip/internal/errors"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"yes word", "yes\n", true},
		{"yes uppercase", "YES\n", true},
		{"no", "n\n", false},
		{"empty defaults to no", "\n", false},
		{"garbage defaults to no", "maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := NewConfirmerWithIO(strings.NewReader(tt.input), &buf)

			got, err := c.Confirm("overwrite?")
			if err != nil {
				t.Fatalf("Confirm() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(buf.String(), "overwrite?") {
				t.Error("prompt should print the question")
			}
		})
	}
}

func TestConfirm_EOF(t *testing.T) {
	var buf bytes.Buffer
	c := NewConfirmerWithIO(strings.NewReader(""), &buf)

	_, err := c.Confirm("continue?")
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("error = %v, want ErrCancelled", err)
	}
}
