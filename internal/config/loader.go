package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overrideDocument is the YAML shape LoadFromFile accepts for a future
// tax year: a thin override over Load2025's closed table, following the
// teacher's InputParser.LoadFromFile (read -> yaml.Unmarshal -> validate)
// idiom.
type overrideDocument struct {
	TaxYear int `yaml:"tax_year"`

	StandardDeduction map[string]string `yaml:"standard_deduction"`
	SALTCap           string            `yaml:"salt_cap"`
}

// LoadFromFile reads a YAML override document and applies it on top of
// the TY2025 table. Only fields present in the document are overridden;
// everything else falls back to Load2025. Returns a wrapped error on any
// read/parse/validation failure, matching the teacher's
// fmt.Errorf("...: %w", err) wrapping idiom throughout internal/config.
func LoadFromFile(path string) (*YearConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var doc overrideDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := validateOverrideDocument(doc); err != nil {
		return nil, fmt.Errorf("config: validating %s: %w", path, err)
	}

	cfg := Load2025()
	if doc.TaxYear != 0 {
		cfg.TaxYear = doc.TaxYear
	}
	for status, amount := range doc.StandardDeduction {
		parsed, err := d2(amount)
		if err != nil {
			return nil, fmt.Errorf("config: standard_deduction[%s]: %w", status, err)
		}
		cfg.StandardDeduction[statusFromYAMLKey(status)] = parsed
	}
	if doc.SALTCap != "" {
		parsed, err := d2(doc.SALTCap)
		if err != nil {
			return nil, fmt.Errorf("config: salt_cap: %w", err)
		}
		cfg.SALTCap = parsed
	}

	return cfg, nil
}

func validateOverrideDocument(doc overrideDocument) error {
	if doc.TaxYear != 0 && doc.TaxYear != 2025 {
		return fmt.Errorf("tax_year %d is not supported; this system specifies TY2025 only", doc.TaxYear)
	}
	return nil
}
