package psgc

import "sort"

// addedPreviewLimit caps how many newly added codes a log line shows.
// The report itself always carries the full list.
const addedPreviewLimit = 25

// MergeReport summarizes what a merge contributed beyond the baseline
type MergeReport struct {
	AddedByLevel map[Level]int `json:"added_by_level"`
	AddedCodes   []string      `json:"added_codes"`
	Conflicts    int           `json:"conflicts"`
}

// TotalAdded returns the number of codes contributed by supplements
func (m *MergeReport) TotalAdded() int {
	return len(m.AddedCodes)
}

// Preview returns the added codes capped for display
func (m *MergeReport) Preview() []string {
	if len(m.AddedCodes) <= addedPreviewLimit {
		return m.AddedCodes
	}
	return m.AddedCodes[:addedPreviewLimit]
}

// Merge combines a reconciled baseline with supplementary datasets.
// Code is the primary key: a code present in the baseline keeps its
// baseline record (conflicts are counted, never overwritten; an
// explicit operator merge mode would be needed for that), and a code
// present only in a supplement is added tagged MissingInBaseline.
// Earlier supplements win over later ones for codes they share.
func Merge(baseline *Batch, supplements ...*Batch) (*Batch, *MergeReport) {
	merged := NewBatch()
	report := &MergeReport{AddedByLevel: make(map[Level]int)}

	for _, e := range baseline.Ordered() {
		merged.Add(e)
	}

	for _, supplement := range supplements {
		for _, e := range supplement.Ordered() {
			if _, exists := merged.Get(e.Code); exists {
				report.Conflicts++
				continue
			}
			added := *e
			added.MissingInBaseline = true
			merged.Add(&added)
			report.AddedByLevel[added.Level]++
			report.AddedCodes = append(report.AddedCodes, added.Code)
		}
	}

	sort.Strings(report.AddedCodes)
	return merged, report
}
