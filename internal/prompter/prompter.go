package prompter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Prompter interface {
	Confirm(question string) (bool, error)
	Prompt(question string) (string, error)
}

type TextPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *TextPrompter {
	return &TextPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *TextPrompter) Confirm(q string) (bool, error) {
	resp, err := p.ask(fmt.Sprintf("%s [y/N]: ", q))
	if err != nil {
		return false, err
	}

	r := strings.ToLower(resp)
	return r == "y" || r == "yes", nil
}

func (p *TextPrompter) Prompt(q string) (string, error) {
	return p.ask(q)
}

// ask returns io.EOF only when the input ended before any answer was typed.
func (p *TextPrompter) ask(q string) (string, error) {
	if _, err := fmt.Fprint(p.out, q); err != nil {
		return "", err
	}

	resp, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && resp != "") {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}
