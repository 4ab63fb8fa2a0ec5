package services

import (
	"encoding/json"
	"fmt"
	"os"

	"psgc_api_go/psgc"

	"gorm.io/gorm"
)

// LoadReference reads the PSA reference totals from an editable JSON
// file keyed by level name:
//
//	{"region": {"expected": 17, "tolerance": 0}, ...}
//
// The figures change when PSA revises the standard, which is why they
// are a data file rather than code.
func LoadReference(path string) (psgc.Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read standards file: %w", err)
	}

	var raw map[string]psgc.LevelStandard
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse standards file: %w", err)
	}

	ref := make(psgc.Reference, len(raw))
	for level, standard := range raw {
		ref[psgc.Level(level)] = standard
	}
	return ref, nil
}

// ValidateStore compares the persisted per-level counts against the
// reference. Discrepancies are findings, never errors.
func ValidateStore(db *gorm.DB, ref psgc.Reference) ([]psgc.Finding, error) {
	counts, err := CountsByLevel(db)
	if err != nil {
		return nil, fmt.Errorf("failed to count store: %w", err)
	}
	return ref.Evaluate(counts), nil
}
