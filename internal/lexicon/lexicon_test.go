package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountMatches(t *testing.T) {
	lex := Default()

	tests := []struct {
		name                  string
		text                  string
		positive, negative, s int
	}{
		{"plain positive", "정말 좋아요!!", 1, 0, 0},
		{"repeated matches count each", "최고 최고 최고", 3, 0, 0},
		{"negative", "그건 좀 짜증나네 ㅡㅡ", 0, 1, 0},
		{"shared word counts in both lists", "개같네", 0, 1, 1},
		{"empty", "", 0, 0, 0},
		{"longest alternative is not preferred", "짱이야", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.positive, lex.CountPositive(tt.text))
			assert.Equal(t, tt.negative, lex.CountNegative(tt.text))
			assert.Equal(t, tt.s, lex.CountSwear(tt.text))
		})
	}
}

func TestMakeMatcherQuotesMetacharacters(t *testing.T) {
	rx := MakeMatcher([]string{"a.b", "(x)"})
	assert.Equal(t, 0, CountMatches("axb", rx))
	assert.Equal(t, 2, CountMatches("a.b and (x)", rx))
	assert.Nil(t, MakeMatcher(nil))
	assert.Equal(t, 0, CountMatches("anything", nil))
}

func TestIncludesAny(t *testing.T) {
	assert.True(t, IncludesAny("오늘 최고였어", defaultPositive))
	assert.False(t, IncludesAny("그냥 그래", defaultPositive))
	assert.False(t, IncludesAny("anything", []string{""}))
}

func TestParseExtendsDefaults(t *testing.T) {
	lex, err := Parse([]byte("positive:\n  - 굳굳\nnegative:\n  - 노잼\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, lex.CountPositive("굳굳"))
	assert.Equal(t, 1, lex.CountPositive("최고"), "built-in words are kept")
	assert.Equal(t, 1, lex.CountNegative("노잼"))
	assert.Equal(t, len(defaultSwear), len(lex.Swear))
}

func TestParseReplace(t *testing.T) {
	lex, err := Parse([]byte("replace: true\npositive: [nice, nice, ' ']\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"nice"}, lex.Positive)
	assert.Equal(t, 0, lex.CountPositive("최고"))
	assert.Equal(t, 0, lex.CountNegative("최악"))
}

func TestLoadFile(t *testing.T) {
	lex, err := LoadFile("")
	require.NoError(t, err)
	assert.Same(t, Default(), lex)

	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("swear: [젠장]\n"), 0o644))
	lex, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, lex.CountSwear("젠장"))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("positive: [unterminated"))
	assert.Error(t, err)
}
