package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestNewDeduplicatesAndLowercases(t *testing.T) {
	lex := New([]string{"Ala", "ala", " oso ", "", "radar"})

	assert.Equal(t, 3, lex.Len())
	assert.True(t, lex.Contains("ala"))
	assert.True(t, lex.Contains("oso"))
	assert.False(t, lex.Contains("Ala"))
	assert.Equal(t, []string{"ala", "oso", "radar"}, lex.Words())
	assert.Equal(t, 5, lex.MaxWordLen())
}

func TestNilLexiconIsEmpty(t *testing.T) {
	var lex *Lexicon
	assert.True(t, lex.IsEmpty())
	assert.False(t, lex.Contains("a"))
	assert.Nil(t, lex.Prefixes("abc"))
	assert.Nil(t, lex.Words())
}

func TestPrefixes(t *testing.T) {
	lex := New([]string{"a", "ab", "aba", "abab", "b"})

	assert.Equal(t, []string{"a", "ab", "aba"}, lex.Prefixes("aba"))
	assert.Equal(t, []string{"a", "ab", "aba", "abab"}, lex.Prefixes("ababab"))
	assert.Equal(t, []string{"b"}, lex.Prefixes("ba"))
	assert.Empty(t, lex.Prefixes("c"))
	assert.Empty(t, lex.Prefixes(""))
}

func TestPrefixesCutsOnRuneBoundaries(t *testing.T) {
	lex := New([]string{"ñ", "ña"})
	assert.Equal(t, []string{"ñ", "ña"}, lex.Prefixes("ñandú"))
	assert.Empty(t, lex.Prefixes("añ"))
}

func TestWithLength(t *testing.T) {
	lex := New([]string{"zaloma", "lomaza", "casa", "amazol"})
	assert.Equal(t, []string{"amazol", "lomaza", "zaloma"}, lex.WithLength(6))
	assert.Equal(t, []string{"casa"}, lex.WithLength(4))
	assert.Empty(t, lex.WithLength(2))
}

func TestNormalize(t *testing.T) {
	raw := []string{"Casa", "casa", "niño", "123", "b", "ab1", "", "  oso ", "x", "amor"}
	got := Normalize(raw, DefaultExclude)
	assert.Equal(t, []string{"casa", "oso", "amor"}, got)
}

func TestNormalizeEmptyExclude(t *testing.T) {
	got := Normalize([]string{"b", "a"}, []string{})
	assert.Equal(t, []string{"b", "a"}, got)
}

func TestRead(t *testing.T) {
	lex, err := Read(strings.NewReader("ala\nOso\nb\n\nreconocer\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"ala", "oso", "reconocer"}, lex.Words())
}

func TestLoad(t *testing.T) {
	t.Run("reads word list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "words.txt")
		require.NoError(t, os.WriteFile(path, []byte("anita\nlava\nla\ntina\n"), 0644))

		lex, err := Load(path, Options{})
		require.NoError(t, err)
		assert.Equal(t, 4, lex.Len())
		assert.True(t, lex.Contains("lava"))
	})

	t.Run("missing file is an empty lexicon", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)

		lex, err := Load(filepath.Join(t.TempDir(), "missing.txt"), Options{Logger: zap.New(core)})
		require.NoError(t, err)
		assert.True(t, lex.IsEmpty())
		assert.Equal(t, 1, logs.FilterMessage("No lexicon found").Len())
	})

	t.Run("directory is an error", func(t *testing.T) {
		_, err := Load(t.TempDir(), Options{})
		assert.Error(t, err)
	})
}
