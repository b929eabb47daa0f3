// Package scenario loads, validates and exports game configuration suites.
package scenario

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/playdeck/internal/model"
)

//go:embed default_suite.json
var defaultSuite []byte

// ModulePrefix starts the wrapped module form of an exported suite.
const ModulePrefix = "export const gameConfig = "

// Default returns the built-in suite.
func Default() (model.Suite, error) {
	return Parse(defaultSuite)
}

// Load reads a suite from path. An empty path returns the built-in suite.
func Load(path string) (model.Suite, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Suite{}, fmt.Errorf("failed to read suite: %w", err)
	}
	suite, err := Parse(data)
	if err != nil {
		return model.Suite{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return suite, nil
}

// Parse decodes JSON, falling back to the wrapped module form.
func Parse(data []byte) (model.Suite, error) {
	var suite model.Suite
	jsonErr := json.Unmarshal(data, &suite)
	if jsonErr == nil {
		return suite, nil
	}
	literal, ok := extractLiteral(string(data))
	if !ok {
		return model.Suite{}, fmt.Errorf("invalid file format: %w", jsonErr)
	}
	normalized, err := evalLiteral(literal)
	if err != nil {
		return model.Suite{}, err
	}
	if err := json.Unmarshal([]byte(normalized), &suite); err != nil {
		return model.Suite{}, fmt.Errorf("failed to decode config object: %w", err)
	}
	return suite, nil
}

// ExportJSON renders the suite as indented JSON.
func ExportJSON(suite model.Suite) ([]byte, error) {
	data, err := json.MarshalIndent(suite, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode suite: %w", err)
	}
	return data, nil
}

// ExportModule renders the suite as "export const gameConfig = <json>".
func ExportModule(suite model.Suite) ([]byte, error) {
	data, err := ExportJSON(suite)
	if err != nil {
		return nil, err
	}
	return append([]byte(ModulePrefix), data...), nil
}

// ReplaceScenario returns a copy of suite with scenario i replaced.
func ReplaceScenario(suite model.Suite, i int, s model.Scenario) (model.Suite, error) {
	if i < 0 || i >= len(suite.Scenarios) {
		return suite, fmt.Errorf("scenario %d out of range [0,%d)", i, len(suite.Scenarios))
	}
	out := suite
	out.Scenarios = append([]model.Scenario(nil), suite.Scenarios...)
	out.Scenarios[i] = s
	return out, nil
}

// Save validates suite and writes it to path: as a wrapped module when the
// extension is .js or .ts, as JSON otherwise.
func Save(path string, suite model.Suite) error {
	if err := Validate(suite); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".ts":
		data, err = ExportModule(suite)
	default:
		data, err = ExportJSON(suite)
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write suite: %w", err)
	}
	return nil
}
