package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a required key is absent or null.
	ErrMissingField = errors.New("missing required field")
	// ErrFieldType is returned when a key holds a value of the wrong JSON type.
	ErrFieldType = errors.New("wrong field type")
)

// Fields is a JSON object whose values are left undecoded.
type Fields map[string]json.RawMessage

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeRequired decodes a key that must be present and not null.
func decodeRequired(f Fields, key string, dst any) error {
	raw, ok := f[key]
	if !ok || isNull(raw) {
		return fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s", ErrFieldType, key)
	}
	return nil
}

// decodeOptional decodes a key if present; absent or null keys leave dst as is.
func decodeOptional(f Fields, key string, dst any) error {
	raw, ok := f[key]
	if !ok || isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s", ErrFieldType, key)
	}
	return nil
}

// AccountFromFields builds an Account from a loosely typed JSON object.
// id and email are required; every other field is optional.
func AccountFromFields(f Fields) (Account, error) {
	var a Account
	if err := decodeRequired(f, "id", &a.ID); err != nil {
		return Account{}, err
	}
	if err := decodeRequired(f, "email", &a.Email); err != nil {
		return Account{}, err
	}
	optional := []struct {
		key string
		dst any
	}{
		{"password", &a.Password},
		{"note", &a.Note},
		{"plan_name", &a.PlanName},
		{"plan_tier", &a.PlanTier},
		{"plan_end", &a.PlanEnd},
		{"used_prompt_credits", &a.UsedPromptCredits},
		{"used_flow_credits", &a.UsedFlowCredits},
		{"api_key", &a.APIKey},
		{"last_sync_time", &a.LastSyncTime},
	}
	for _, o := range optional {
		if err := decodeOptional(f, o.key, o.dst); err != nil {
			return Account{}, err
		}
	}
	return a, nil
}

// ServerConfigFromFields builds a ServerConfig from a loosely typed JSON object.
// Enabled defaults to true when the key is absent.
func ServerConfigFromFields(f Fields) (ServerConfig, error) {
	s := ServerConfig{Enabled: true}
	for _, key := range []struct {
		name string
		dst  *string
	}{{"id", &s.ID}, {"name", &s.Name}, {"command", &s.Command}} {
		if err := decodeRequired(f, key.name, key.dst); err != nil {
			return ServerConfig{}, err
		}
	}
	if err := decodeOptional(f, "args", &s.Args); err != nil {
		return ServerConfig{}, err
	}
	if err := decodeOptional(f, "env", &s.Env); err != nil {
		return ServerConfig{}, err
	}
	if err := decodeOptional(f, "enabled", &s.Enabled); err != nil {
		return ServerConfig{}, err
	}
	s.Normalize()
	return s, nil
}

// RuleConfigFromFields builds a RuleConfig from a loosely typed JSON object.
func RuleConfigFromFields(f Fields) (RuleConfig, error) {
	var r RuleConfig
	if err := decodeRequired(f, "id", &r.ID); err != nil {
		return RuleConfig{}, err
	}
	if err := decodeRequired(f, "prompt", &r.Prompt); err != nil {
		return RuleConfig{}, err
	}
	return r, nil
}
