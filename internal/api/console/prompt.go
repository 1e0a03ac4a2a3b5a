// Package console asks for missing entry point parameters on the terminal.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter читает ответы построчно.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask возвращает value, если оно задано, иначе спрашивает пользователя.
func (p *Prompter) Ask(value, question string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("no answer to %q", strings.TrimSpace(question))
	}
	return line, nil
}
