// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mbtools/pk3strip/internal/errors"
)

// ErrCancelled indicates the prompt was aborted (e.g., Ctrl+D).
var ErrCancelled = errors.New("prompt cancelled")

// Confirmer asks yes/no questions.
type Confirmer struct {
	reader io.Reader
	writer io.Writer
}

// NewConfirmer creates a Confirmer using stdin and stdout.
func NewConfirmer() *Confirmer {
	return &Confirmer{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewConfirmerWithIO creates a Confirmer with custom reader and writer for testing.
func NewConfirmerWithIO(r io.Reader, w io.Writer) *Confirmer {
	return &Confirmer{
		reader: r,
		writer: w,
	}
}

// Confirm asks the question and reads a yes/no answer.
//
// Returns:
//   - true for "y" or "yes" (case-insensitive)
//   - false for anything else, including an empty answer (default is no)
//   - ErrCancelled if input is EOF (e.g., Ctrl+D)
func (c *Confirmer) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.writer, "%s [y/N]: ", question)

	reader := bufio.NewReader(c.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, ErrCancelled
		}
		return false, errors.Wrap(err, "reading answer")
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
