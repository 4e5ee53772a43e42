package console

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipeConsole(t *testing.T, input string) (*Console, *bytes.Buffer) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(input)
	require.NoError(t, err)
	w.Close()
	t.Cleanup(func() { r.Close() })

	out := new(bytes.Buffer)
	return New(r, out), out
}

func TestReadKeyFallsBackToLines(t *testing.T) {
	c, out := pipeConsole(t, "3\n\nk\n")
	assert := assert.New(t)

	key, err := c.ReadKey("answer: ")
	assert.NoError(err)
	assert.Equal("3", key)

	key, err = c.ReadKey("answer: ")
	assert.NoError(err)
	assert.Equal("", key)

	line, err := c.ReadLine("key: ")
	assert.NoError(err)
	assert.Equal("k", line)
	assert.Contains(out.String(), "answer: ")
}

func TestRawKeyAfterLine(t *testing.T) {
	c, _ := pipeConsole(t, "w\n90\n3\r\x04")
	assert := assert.New(t)

	line, err := c.ReadLine("")
	assert.NoError(err)
	assert.Equal("w", line)
	line, err = c.ReadLine("tempo: ")
	assert.NoError(err)
	assert.Equal("90", line)

	for _, want := range []string{"3", "", "x"} {
		key, err := c.readRawKey()
		assert.NoError(err)
		assert.Equal(want, key)
	}
	_, err = c.readRawKey()
	assert.ErrorIs(err, io.EOF)
}

func TestReadLineWithoutNewline(t *testing.T) {
	c, _ := pipeConsole(t, "1 4 5")
	line, err := c.ReadLine("")
	assert.NoError(t, err)
	assert.Equal(t, "1 4 5", line)

	_, err = c.ReadLine("")
	assert.Error(t, err)
}

func TestMergedPrompterTakesMIDIAnswers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stdin, w := io.Pipe()
	defer w.Close()
	midiAnswers := make(chan string, 1)
	midiAnswers <- "C E"
	out := new(bytes.Buffer)
	m := NewMergedPrompter(ctx, stdin, out, midiAnswers)

	got, err := m.ReadKey("?")
	require.NoError(t, err)
	assert.Equal(t, "C E", got)
	assert.Contains(t, out.String(), "C E")
}

func TestMergedPrompterLines(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewMergedPrompter(ctx, strings.NewReader("5\nD\n"), new(bytes.Buffer), nil)
	got, err := m.ReadKey("?")
	require.NoError(t, err)
	assert.Equal(t, "5", got)

	got, err = m.ReadLine("key: ")
	require.NoError(t, err)
	assert.Equal(t, "D", got)
}
