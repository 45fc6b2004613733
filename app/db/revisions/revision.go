// Package revisions applies pricing revisions to the CMS catalog and
// recomputes the stored price of every configuration afterwards.
package revisions

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/Rakhulsr/go-furniture/app/configs"
	"github.com/Rakhulsr/go-furniture/app/utils/calc"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const minMultiplier = 0.1

var ErrInvalidRevision = errors.New("invalid pricing revision")

type QualityRevision struct {
	Adjustment float64 `yaml:"adjustment"`
	Direction  string  `yaml:"direction"`
}

// Revision maps document slugs to their new pricing values.
type Revision struct {
	Name      string                     `yaml:"name"`
	Materials map[string]float64         `yaml:"materials"`
	Sizes     map[string]float64         `yaml:"sizes"`
	Qualities map[string]QualityRevision `yaml:"qualities"`
}

// DefaultRevision is the current price list, applied when update-pricing
// runs without a file.
func DefaultRevision() Revision {
	return Revision{
		Name: "additive quality adjustments",
		Materials: map[string]float64{
			"oak":    1.5,
			"walnut": 1.8,
			"ash":    1.3,
			"pine":   1.0,
		},
		Sizes: map[string]float64{
			"small":  1.0,
			"medium": 1.7,
			"large":  2.3,
		},
		Qualities: map[string]QualityRevision{
			"prime":     {Adjustment: 35, Direction: string(calc.DirectionAdd)},
			"character": {Adjustment: 20, Direction: string(calc.DirectionAdd)},
			"rustic":    {Adjustment: 10, Direction: string(calc.DirectionSubtract)},
		},
	}
}

func LoadRevision(path string) (Revision, error) {
	if err := configs.RequireFile(path); err != nil {
		return Revision{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Revision{}, err
	}

	var rev Revision
	if err := yaml.Unmarshal(raw, &rev); err != nil {
		return Revision{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if rev.Name == "" {
		rev.Name = path
	}
	return rev, nil
}

// Validate checks every value before anything is written.
func (r Revision) Validate() error {
	var problems []string
	for _, s := range sortedKeys(r.Materials) {
		if r.Materials[s] < minMultiplier {
			problems = append(problems, fmt.Sprintf("material %s: multiplier %v is below %v", s, r.Materials[s], minMultiplier))
		}
	}
	for _, s := range sortedKeys(r.Sizes) {
		if r.Sizes[s] < minMultiplier {
			problems = append(problems, fmt.Sprintf("size %s: multiplier %v is below %v", s, r.Sizes[s], minMultiplier))
		}
	}
	for _, s := range sortedKeys(r.Qualities) {
		q := r.Qualities[s]
		if _, err := q.legacyMultiplier(); err != nil {
			problems = append(problems, fmt.Sprintf("quality %s: %v", s, err))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRevision, problems)
	}
	return nil
}

func (q QualityRevision) legacyMultiplier() (float64, error) {
	m, err := calc.LegacyQualityMultiplier(decimal.NewFromFloat(q.Adjustment), calc.Direction(q.Direction))
	if err != nil {
		return 0, err
	}
	return m.InexactFloat64(), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
