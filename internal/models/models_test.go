package models_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(t *testing.T, s string) models.Fields {
	t.Helper()
	var f models.Fields
	require.NoError(t, json.Unmarshal([]byte(s), &f))
	return f
}

func TestAccountFromFields(t *testing.T) {
	a, err := models.AccountFromFields(fields(t, `{
		"id": "a1", "email": "x@y.com", "password": "p", "note": "n",
		"plan_name": "Pro", "used_prompt_credits": 12, "extra": true
	}`))
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, "x@y.com", a.Email)
	assert.Equal(t, "p", a.Password)
	assert.Equal(t, "n", a.Note)
	require.NotNil(t, a.PlanName)
	assert.Equal(t, "Pro", *a.PlanName)
	require.NotNil(t, a.UsedPromptCredits)
	assert.Equal(t, 12, *a.UsedPromptCredits)
	assert.Nil(t, a.PlanEnd)
	assert.Nil(t, a.APIKey)
}

func TestAccountFromFields_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"missing id", `{"email": "x@y.com"}`, models.ErrMissingField},
		{"null email", `{"id": "a", "email": null}`, models.ErrMissingField},
		{"numeric id", `{"id": 7, "email": "x@y.com"}`, models.ErrFieldType},
		{"credits as string", `{"id": "a", "email": "e", "used_flow_credits": "5"}`, models.ErrFieldType},
		{"note as object", `{"id": "a", "email": "e", "note": {}}`, models.ErrFieldType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := models.AccountFromFields(fields(t, tt.in))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestServerConfigFromFields_Defaults(t *testing.T) {
	s, err := models.ServerConfigFromFields(fields(t, `{"id": "s1", "name": "fs", "command": "npx"}`))
	require.NoError(t, err)
	assert.True(t, s.Enabled)
	assert.Equal(t, []string{}, s.Args)
	assert.Equal(t, map[string]string{}, s.Env)

	s, err = models.ServerConfigFromFields(fields(t, `{
		"id": "s2", "name": "git", "command": "uvx",
		"args": ["mcp-git", "--repo", "."], "env": {"A": "1"}, "enabled": false
	}`))
	require.NoError(t, err)
	assert.False(t, s.Enabled)
	assert.Equal(t, []string{"mcp-git", "--repo", "."}, s.Args)
	assert.Equal(t, map[string]string{"A": "1"}, s.Env)
}

func TestServerConfigFromFields_Rejects(t *testing.T) {
	for _, in := range []string{
		`{"id": "s", "name": "n"}`,
		`{"id": "s", "name": "n", "command": "c", "args": "a b"}`,
		`{"id": "s", "name": "n", "command": "c", "env": {"A": 1}}`,
		`{"id": "s", "name": "n", "command": "c", "enabled": "yes"}`,
	} {
		_, err := models.ServerConfigFromFields(fields(t, in))
		assert.Error(t, err, in)
	}
}

func TestRuleConfigFromFields(t *testing.T) {
	r, err := models.RuleConfigFromFields(fields(t, `{"id": "r1", "prompt": "line1\nline2"}`))
	require.NoError(t, err)
	assert.Equal(t, models.RuleConfig{ID: "r1", Prompt: "line1\nline2"}, r)

	_, err = models.RuleConfigFromFields(fields(t, `{"id": "r1"}`))
	assert.ErrorIs(t, err, models.ErrMissingField)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, models.ServerConfig{ID: "  "}.Validate(), models.ErrEmptyID)
	assert.NoError(t, models.ServerConfig{ID: "x"}.Validate())
	assert.ErrorIs(t, models.RuleConfig{}.Validate(), models.ErrEmptyID)
	assert.NoError(t, models.RuleConfig{ID: "r"}.Validate())
}

func TestRuleConfigPreview(t *testing.T) {
	assert.Equal(t, "a b", models.RuleConfig{Prompt: "a\nb"}.Preview())

	long := strings.Repeat("x", 61)
	got := models.RuleConfig{Prompt: long}.Preview()
	assert.Equal(t, strings.Repeat("x", 57)+"...", got)

	exact := strings.Repeat("я", 60)
	assert.Equal(t, exact, models.RuleConfig{Prompt: exact}.Preview())
}

func TestServerConfigClone(t *testing.T) {
	orig := models.ServerConfig{ID: "s", Args: []string{"a"}, Env: map[string]string{"K": "V"}}
	c := orig.Clone()
	c.Args[0] = "b"
	c.Env["K"] = "W"
	assert.Equal(t, "a", orig.Args[0])
	assert.Equal(t, "V", orig.Env["K"])

	empty := models.ServerConfig{ID: "e"}.Clone()
	assert.NotNil(t, empty.Args)
	assert.NotNil(t, empty.Env)
}

func TestAccountClone(t *testing.T) {
	plan, credits := "pro", 3
	orig := models.Account{ID: "a", PlanName: &plan, UsedFlowCredits: &credits}
	c := orig.Clone()
	*c.PlanName = "free"
	*c.UsedFlowCredits = 7
	assert.Equal(t, "pro", *orig.PlanName)
	assert.Equal(t, 3, *orig.UsedFlowCredits)
	assert.Nil(t, c.PlanEnd)
}
