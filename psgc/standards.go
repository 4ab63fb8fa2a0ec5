package psgc

// Verdict is the outcome of comparing an actual per-level count
// against the published PSA reference total
type Verdict string

const (
	VerdictExactMatch      Verdict = "exact_match"
	VerdictWithinTolerance Verdict = "within_tolerance"
	VerdictOutOfRange      Verdict = "out_of_range"
)

// LevelStandard is the expected count for one level, with an optional
// tolerance window. PSA revises the published figures periodically, so
// these always come from configuration, never from constants.
type LevelStandard struct {
	Expected  int `json:"expected"`
	Tolerance int `json:"tolerance"`
}

// Reference maps each level to its published standard
type Reference map[Level]LevelStandard

// Finding is the verdict for one level. Delta is actual minus
// expected; a mismatch is a normal reporting outcome, never an error.
type Finding struct {
	Level    Level   `json:"level"`
	Verdict  Verdict `json:"verdict"`
	Expected int     `json:"expected"`
	Actual   int     `json:"actual"`
	Delta    int     `json:"delta"`
}

// standardsOrder fixes the report ordering root-first
var standardsOrder = []Level{LevelRegion, LevelProvince, LevelCity, LevelMunicipality, LevelBarangay}

// Evaluate compares per-level counts against the reference. Levels
// absent from the reference are skipped.
func (ref Reference) Evaluate(counts map[Level]int) []Finding {
	findings := make([]Finding, 0, len(ref))

	for _, level := range standardsOrder {
		standard, ok := ref[level]
		if !ok {
			continue
		}
		actual := counts[level]
		delta := actual - standard.Expected

		verdict := VerdictOutOfRange
		switch {
		case delta == 0:
			verdict = VerdictExactMatch
		case abs(delta) <= standard.Tolerance:
			verdict = VerdictWithinTolerance
		}

		findings = append(findings, Finding{
			Level:    level,
			Verdict:  verdict,
			Expected: standard.Expected,
			Actual:   actual,
			Delta:    delta,
		})
	}

	return findings
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
