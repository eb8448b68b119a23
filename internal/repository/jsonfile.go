// Package repository persists AccountKeeper records as JSON array files.
package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"go.uber.org/zap"
)

// ErrMalformedFile is returned when a file is not valid JSON or its
// top-level value is not an array.
var ErrMalformedFile = errors.New("malformed file")

// Decoder maps one loosely typed JSON object onto a record.
type Decoder[T any] func(models.Fields) (T, error)

// JSONFile loads and saves a homogeneous list of records kept as a JSON array.
type JSONFile[T any] struct {
	decode Decoder[T]
	log    *zap.Logger
}

// NewJSONFile creates a JSONFile that decodes elements with decode.
// A nil logger disables logging.
func NewJSONFile[T any](decode Decoder[T], log *zap.Logger) *JSONFile[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &JSONFile[T]{decode: decode, log: log}
}

// NewServerFile returns a JSONFile for MCP server entries.
func NewServerFile(log *zap.Logger) *JSONFile[models.ServerConfig] {
	return NewJSONFile(models.ServerConfigFromFields, log)
}

// NewRuleFile returns a JSONFile for rule entries.
func NewRuleFile(log *zap.Logger) *JSONFile[models.RuleConfig] {
	return NewJSONFile(models.RuleConfigFromFields, log)
}

// Load reads the records stored at path.
//
// A missing file yields an empty list. Elements that are not objects or
// that the decoder rejects are skipped; the rest keep their order.
func (f *JSONFile[T]) Load(path string) ([]T, error) {
	elems, err := readArray(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, err
	}

	records := make([]T, 0, len(elems))
	for i, raw := range elems {
		obj, ok := asObject(raw)
		if !ok {
			f.log.Debug("skipping non-object element", zap.String("path", path), zap.Int("index", i))
			continue
		}
		rec, err := f.decode(obj)
		if err != nil {
			f.log.Debug("skipping malformed element",
				zap.String("path", path), zap.Int("index", i), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save overwrites path with records as an indented JSON array.
// The parent directory must already exist.
func (f *JSONFile[T]) Save(path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	f.log.Debug("saved records", zap.String("path", path), zap.Int("count", len(records)))
	return nil
}

// readArray returns the raw elements of the JSON array stored at path.
// Read errors are wrapped so fs.ErrNotExist can still be detected.
func readArray(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if json.Valid(trimmed) {
			return nil, fmt.Errorf("%w: %s: top-level value is not an array", ErrMalformedFile, path)
		}
		return nil, fmt.Errorf("%w: %s: invalid JSON", ErrMalformedFile, path)
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedFile, path, err)
	}
	return elems, nil
}

func asObject(raw json.RawMessage) (models.Fields, bool) {
	var obj models.Fields
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
