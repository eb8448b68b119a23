package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgs(t *testing.T) {
	assert.Equal(t, []string{}, ParseArgs(""))
	assert.Equal(t, []string{"-y", "@scope/server", "--port", "9"}, ParseArgs("  -y  @scope/server --port 9 "))
	assert.Equal(t, "-y x", FormatArgs(ParseArgs("-y x")))
}

func TestParseEnv(t *testing.T) {
	env := ParseEnv("A=1\n\n  B = two words \nbroken line\nC=x=y\nA=3\n")
	assert.Equal(t, map[string]string{"A": "3", "B": "two words", "C": "x=y"}, env)
	assert.Equal(t, map[string]string{}, ParseEnv(""))
}

func TestFormatEnv(t *testing.T) {
	assert.Equal(t, "A=1\nB=2", FormatEnv(map[string]string{"B": "2", "A": "1"}))
	assert.Equal(t, "", FormatEnv(nil))
}

func TestNormalizePrompt(t *testing.T) {
	assert.Equal(t, "a\n\nb", NormalizePrompt("a\n\nb\n\n"))
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
