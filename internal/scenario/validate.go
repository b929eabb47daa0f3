// Package scenario loads, validates and exports game configuration suites.
package scenario

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/playdeck/internal/model"
)

// Validate checks the geometry the games rely on: dot numbers 1..N without
// gaps or duplicates, one drop zone per label and known difficulty tags.
// All problems are reported together.
func Validate(suite model.Suite) error {
	var errs []error
	for _, shape := range suite.Shapes {
		if err := validateShape(shape); err != nil {
			errs = append(errs, err)
		}
	}
	for _, scn := range suite.Scenarios {
		if err := validateScenario(scn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validateShape(shape model.Shape) error {
	if !shape.Difficulty.Valid() {
		return fmt.Errorf("shape %q: invalid difficulty %q", shape.Name, shape.Difficulty)
	}
	n := len(shape.Dots)
	if n == 0 {
		return fmt.Errorf("shape %q: no dots", shape.Name)
	}
	seen := make(map[int]bool, n)
	for _, d := range shape.Dots {
		if d.Number < 1 || d.Number > n {
			return fmt.Errorf("shape %q: dot number %d outside 1..%d", shape.Name, d.Number, n)
		}
		if seen[d.Number] {
			return fmt.Errorf("shape %q: duplicate dot number %d", shape.Name, d.Number)
		}
		seen[d.Number] = true
	}
	return nil
}

func validateScenario(scn model.Scenario) error {
	if !scn.Difficulty.Valid() {
		return fmt.Errorf("scenario %q: invalid difficulty %q", scn.Name, scn.Difficulty)
	}
	ids := make(map[string]bool, len(scn.LabelPositions))
	zones := make(map[string]bool, len(scn.LabelPositions))
	for _, p := range scn.LabelPositions {
		if p.ID == "" {
			return fmt.Errorf("scenario %q: label position without id", scn.Name)
		}
		if ids[p.ID] {
			return fmt.Errorf("scenario %q: duplicate position id %q", scn.Name, p.ID)
		}
		ids[p.ID] = true
		if zones[p.Label] {
			return fmt.Errorf("scenario %q: label %q has more than one position", scn.Name, p.Label)
		}
		zones[p.Label] = true
	}
	labels := make(map[string]bool, len(scn.Labels))
	for _, l := range scn.Labels {
		if labels[l] {
			return fmt.Errorf("scenario %q: duplicate label %q", scn.Name, l)
		}
		labels[l] = true
		if !zones[l] {
			return fmt.Errorf("scenario %q: label %q has no position", scn.Name, l)
		}
	}
	return nil
}
