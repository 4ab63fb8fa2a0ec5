// Package psgc implements the classification and hierarchy-normalization
// engine for Philippine Standard Geographic Codes. It turns raw source
// records into classified entities, repairs incomplete ancestor chains,
// merges datasets, and checks aggregate counts against the published
// PSA reference totals. Everything in this package is a deterministic,
// side-effect-free transformation over in-memory batches; persistence
// and transport live elsewhere.
package psgc

import (
	"fmt"
	"strings"
)

// CodeLength is the canonical PSGC code width
const CodeLength = 9

// Level identifies the administrative level a code belongs to
type Level string

const (
	LevelRegion       Level = "region"
	LevelProvince     Level = "province"
	LevelCity         Level = "city"
	LevelMunicipality Level = "municipality"
	LevelBarangay     Level = "barangay"

	// LevelCityMunicipality is the provisional level for the shared
	// XXYYZZ000 shape before city/municipality disambiguation
	LevelCityMunicipality Level = "city_municipality"
)

// levelRank orders levels root-first; city and municipality share a
// rank because they share a code shape.
var levelRank = map[Level]int{
	LevelRegion:           0,
	LevelProvince:         1,
	LevelCity:             2,
	LevelMunicipality:     2,
	LevelCityMunicipality: 2,
	LevelBarangay:         3,
}

// NormalizeCode converts a raw source code into the canonical 9-digit
// form: non-digits are stripped, an exactly-10-digit value with a
// leading zero drops that zero (a quirk of one source format), longer
// values keep their first 9 digits, and shorter values are left-padded
// with zeros. The all-zero code means "no code" and is rejected.
func NormalizeCode(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if digits == "" {
		return "", fmt.Errorf("%w: %q contains no digits", ErrInvalidCode, raw)
	}

	if len(digits) == 10 && digits[0] == '0' {
		digits = digits[1:]
	}
	if len(digits) > CodeLength {
		digits = digits[:CodeLength]
	}
	if len(digits) < CodeLength {
		digits = strings.Repeat("0", CodeLength-len(digits)) + digits
	}

	if digits == strings.Repeat("0", CodeLength) {
		return "", fmt.Errorf("%w: %q normalizes to all zeros", ErrInvalidCode, raw)
	}

	return digits, nil
}

// ClassifyCode determines the administrative level of a canonical
// 9-digit code by its zero-suffix shape, most specific first. The
// XXYYZZ000 shape is reported as LevelCityMunicipality; telling cities
// from municipalities needs signals beyond the code (see Classifier).
func ClassifyCode(code string) (Level, error) {
	if len(code) != CodeLength || !allDigits(code) {
		return "", fmt.Errorf("%w: %q is not a canonical 9-digit code", ErrUnclassifiableCode, code)
	}

	switch {
	case allZero(code[2:]):
		return LevelRegion, nil
	case allZero(code[4:]):
		return LevelProvince, nil
	case allZero(code[6:]):
		return LevelCityMunicipality, nil
	default:
		// Barangay by exclusion: the last three digits are not 000
		return LevelBarangay, nil
	}
}

// ParentCode derives the ancestor code at the target level by
// positional truncation. The target must be a strict ancestor of the
// code's own level.
func ParentCode(code string, target Level) (string, error) {
	own, err := ClassifyCode(code)
	if err != nil {
		return "", err
	}

	targetRank, ok := levelRank[target]
	if !ok {
		return "", fmt.Errorf("%w: unknown level %q", ErrInvalidAncestorRequest, target)
	}
	if targetRank >= levelRank[own] {
		return "", fmt.Errorf("%w: %s is not above %s", ErrInvalidAncestorRequest, target, own)
	}

	switch targetRank {
	case 0:
		return code[:2] + "0000000", nil
	case 1:
		return code[:4] + "00000", nil
	default:
		return code[:6] + "000", nil
	}
}

func allZero(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
