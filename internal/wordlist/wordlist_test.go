package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/sentcrypt/internal/secure"
)

func TestParse(t *testing.T) {
	input := "# comment line\n\n  dragon  \nforest\n#galaxy\nsunset\n\tmatrix\r\nforest\nraven\n"

	l, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	want := []string{"dragon", "forest", "sunset", "matrix", "raven"}
	require.Equal(t, len(want), l.Size())
	for i, w := range want {
		assert.Equal(t, w, l.Word(i), "index %d", i)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "\n\n", "# only\n# comments\n", "   \n\t\n"} {
		_, err := Parse(strings.NewReader(input))
		assert.ErrorIs(t, err, secure.ErrInvalidArgument, "input %q", input)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wordlist.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\ngamma\n"), 0600))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, l.Size())
	assert.Equal(t, "gamma", l.Word(2))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	_, err := Load(path)
	assert.ErrorIs(t, err, secure.ErrInvalidArgument)
	assert.Contains(t, err.Error(), path)
}

func TestDefault(t *testing.T) {
	l := Default()
	assert.Equal(t, 512, l.Size())

	seen := make(map[string]bool, l.Size())
	for i := 0; i < l.Size(); i++ {
		w := l.Word(i)
		assert.NotEmpty(t, w)
		assert.False(t, strings.ContainsAny(w, " \t-#"), "word %q", w)
		assert.False(t, seen[w], "duplicate word %q", w)
		seen[w] = true
	}
}

func TestResolve(t *testing.T) {
	l, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Default().Size(), l.Size())

	path := filepath.Join(t.TempDir(), "w.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0600))
	l, err = Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Size())
}

func TestNew_CopiesInput(t *testing.T) {
	words := []string{"a", "b"}
	l := New(words...)
	words[0] = "z"
	assert.Equal(t, "a", l.Word(0))
}
