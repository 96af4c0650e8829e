package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the operator a question and returns the trimmed answer.
type Prompter interface {
	Ask(question string) (string, error)
}

// LinePrompter reads one line per question.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewLinePrompter creates a prompter reading answers from r and writing questions to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

// Ask writes question and reads up to the next newline.
// A final line without newline is still returned, io.EOF is returned only when nothing was read.
func (p *LinePrompter) Ask(question string) (string, error) {
	if _, err := fmt.Fprint(p.w, question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
