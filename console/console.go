package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter is what the quiz needs from a terminal.
type Prompter interface {
	// ReadKey returns after a single keystroke where possible.
	ReadKey(prompt string) (string, error)
	ReadLine(prompt string) (string, error)
}

type Console struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

func New(in *os.File, out io.Writer) *Console {
	return &Console{in: in, out: out, reader: bufio.NewReader(in)}
}

func (c *Console) isTerminal() bool {
	return term.IsTerminal(int(c.in.Fd()))
}

// ReadKey puts the terminal in raw mode for one byte. Enter reads as "",
// Ctrl-C and Ctrl-D as "x". Without a terminal it falls back to ReadLine.
func (c *Console) ReadKey(prompt string) (string, error) {
	if !c.isTerminal() {
		return c.ReadLine(prompt)
	}
	fmt.Fprintln(c.out, prompt)

	fd := int(c.in.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return "", err
	}
	defer term.Restore(fd, old)
	return c.readRawKey()
}

// readRawKey reads one byte through the buffer ReadLine uses.
func (c *Console) readRawKey() (string, error) {
	b, err := c.reader.ReadByte()
	if err != nil {
		return "", err
	}
	switch b {
	case '\r', '\n':
		return "", nil
	case 3, 4:
		return "x", nil
	}
	return string(b), nil
}

func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// MergedPrompter reads lines from a terminal in the background and also
// accepts answers played on a MIDI keyboard; whichever arrives first wins.
type MergedPrompter struct {
	out   io.Writer
	lines chan lineResult
	midi  <-chan string
}

type lineResult struct {
	line string
	err  error
}

func NewMergedPrompter(ctx context.Context, in io.Reader, out io.Writer, midiAnswers <-chan string) *MergedPrompter {
	m := &MergedPrompter{out: out, lines: make(chan lineResult), midi: midiAnswers}
	go func() {
		reader := bufio.NewReader(in)
		for {
			line, err := reader.ReadString('\n')
			select {
			case m.lines <- lineResult{strings.TrimRight(line, "\r\n"), err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return m
}

func (m *MergedPrompter) ReadKey(prompt string) (string, error) {
	fmt.Fprintln(m.out, prompt)
	select {
	case r := <-m.lines:
		return r.line, r.err
	case a := <-m.midi:
		fmt.Fprintln(m.out, a)
		return a, nil
	}
}

func (m *MergedPrompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	r := <-m.lines
	return r.line, r.err
}
