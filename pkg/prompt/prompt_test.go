package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("python,c\n   \n"), &out)

	v, err := p.String("Languages: ", "all")
	require.NoError(t, err)
	assert.Equal(t, "python,c", v)

	v, err = p.String("Author: ", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "Ada", v, "whitespace keeps the default")

	assert.Equal(t, "Languages: Author: ", out.String())
}

func TestString_KeepsInnerWhitespace(t *testing.T) {
	p := New(strings.NewReader("Ada Lovelace \r\n"), &bytes.Buffer{})

	v, err := p.String("Author: ", "")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace ", v)
}

func TestString_EOFKeepsDefault(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{})

	v, err := p.String("Sort: ", "name")
	require.NoError(t, err)
	assert.Equal(t, "name", v)
}

func TestString_LastLineWithoutNewline(t *testing.T) {
	p := New(strings.NewReader("type"), &bytes.Buffer{})

	v, err := p.String("Sort: ", "name")
	require.NoError(t, err)
	assert.Equal(t, "type", v)
}

func TestBool(t *testing.T) {
	p := New(strings.NewReader("true\nFALSE\n\n tRUE \nfAlSe\n"), &bytes.Buffer{})

	for _, want := range []bool{true, false, true, true, false} {
		v, err := p.Bool("Note: ", true)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestBool_Invalid(t *testing.T) {
	p := New(strings.NewReader("maybe\n"), &bytes.Buffer{})

	_, err := p.Bool("Note: ", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBool))
	assert.Contains(t, err.Error(), "maybe")
}

func TestBool_OnlyTrueAndFalseWords(t *testing.T) {
	for _, answer := range []string{"1", "0", "t", "F", "yes", "truee"} {
		p := New(strings.NewReader(answer+"\n"), &bytes.Buffer{})

		_, err := p.Bool("Note: ", true)
		assert.ErrorIs(t, err, ErrInvalidBool, "answer %q", answer)
	}
}

func TestPath(t *testing.T) {
	p := New(strings.NewReader(" out//dir/../bundle.txt \n\n"), &bytes.Buffer{})

	v, err := p.Path("Output: ", "default.txt")
	require.NoError(t, err)
	assert.Equal(t, "out/bundle.txt", v)

	v, err = p.Path("Output: ", "default.txt")
	require.NoError(t, err)
	assert.Equal(t, "default.txt", v)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPromptWriteFailure(t *testing.T) {
	p := New(strings.NewReader("x\n"), failingWriter{})
	_, err := p.String("Label: ", "")
	assert.Error(t, err)
}
