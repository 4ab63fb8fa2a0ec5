package psgc

import "log"

// ReconcileReport summarizes one reconciliation pass
type ReconcileReport struct {
	Created     map[Level]int `json:"created"`
	Synthesized map[Level]int `json:"synthesized"`
	Duplicates  map[Level]int `json:"duplicates"`
	Rejected    int           `json:"rejected"`
}

func newReconcileReport() *ReconcileReport {
	return &ReconcileReport{
		Created:     make(map[Level]int),
		Synthesized: make(map[Level]int),
		Duplicates:  make(map[Level]int),
	}
}

// TotalSynthesized sums placeholder counts across levels
func (r *ReconcileReport) TotalSynthesized() int {
	n := 0
	for _, v := range r.Synthesized {
		n += v
	}
	return n
}

// TotalDuplicates sums duplicate counts across levels
func (r *ReconcileReport) TotalDuplicates() int {
	n := 0
	for _, v := range r.Duplicates {
		n += v
	}
	return n
}

// TotalCreated sums created counts across levels
func (r *ReconcileReport) TotalCreated() int {
	n := 0
	for _, v := range r.Created {
		n += v
	}
	return n
}

// Reconciler validates and repairs the ancestor chains of one batch of
// classified entities. It exclusively owns parent-link decisions: no
// other component alters parent links after reconciliation.
//
// Seen carries the codes (with their levels) already persisted from
// earlier batches. The set is explicit state owned by the batch run,
// updated in place as the batch is absorbed; there is no ambient
// global dedup state.
type Reconciler struct {
	Seen map[string]Level
}

// NewReconciler returns a reconciler over the given already-seen code
// set. Pass nil for a fresh run.
func NewReconciler(seen map[string]Level) *Reconciler {
	if seen == nil {
		seen = make(map[string]Level)
	}
	return &Reconciler{Seen: seen}
}

// Reconcile absorbs the classified entities into a batch that
// satisfies every hierarchy invariant: duplicates collapse last-wins,
// missing ancestors are synthesized as placeholders, and every
// barangay ends up attached to exactly one of a city or municipality
// whose code equals its 6-digit prefix + "000".
func (r *Reconciler) Reconcile(entities []*Entity) (*Batch, *ReconcileReport) {
	batch := NewBatch()
	report := newReconcileReport()

	// Pass 1: last-seen-wins dedup into the level maps
	for _, e := range entities {
		_, alreadySeen := r.Seen[e.Code]
		replaced := batch.Add(e)
		if replaced || alreadySeen {
			report.Duplicates[e.Level]++
		}
	}

	// Pass 2: ancestor existence, root-down so synthesized parents are
	// in place before their children are checked
	for _, e := range batch.Ordered() {
		switch e.Level {
		case LevelProvince:
			e.RegionCode = r.regionCodeOf(e)
			r.ensureRegion(batch, report, e.RegionCode)
		case LevelCity, LevelMunicipality:
			e.ProvinceCode = r.provinceCodeOf(e)
			e.RegionCode = r.regionCodeOf(e)
			r.ensureProvince(batch, report, e.ProvinceCode)
			r.ensureRegion(batch, report, e.RegionCode)
		case LevelBarangay:
			r.resolveBarangayParent(batch, report, e)
		}
	}

	// Absorb the batch into the seen set for subsequent batches
	for _, e := range batch.Ordered() {
		r.Seen[e.Code] = e.Level
		if !e.Synthesized {
			report.Created[e.Level]++
		}
	}

	return batch, report
}

// resolveBarangayParent assigns the barangay to the city or
// municipality matching its code prefix. Declared parents that
// contradict the prefix, or that name the wrong level for the entity
// the prefix resolves to, are reassigned; a prefix matching nothing
// gets a placeholder at the declared level (municipality when nothing
// was declared, the documented repair default).
func (r *Reconciler) resolveBarangayParent(batch *Batch, report *ReconcileReport, e *Entity) {
	prefix := e.Code[:6] + "000"

	if e.CityCode != "" && e.CityCode != prefix {
		log.Printf("[RECONCILE] barangay %s declares city_code %s but its prefix is %s, reassigning", e.Code, e.CityCode, prefix)
		e.CityCode = ""
	}
	if e.MunicipalityCode != "" && e.MunicipalityCode != prefix {
		log.Printf("[RECONCILE] barangay %s declares municipality_code %s but its prefix is %s, reassigning", e.Code, e.MunicipalityCode, prefix)
		e.MunicipalityCode = ""
	}

	// The actual level of the prefix entity wins over the declared
	// link: a barangay pointing a city_code at a municipality (or the
	// reverse) would break the foreign-key contract at write time.
	switch r.levelAt(batch, prefix) {
	case LevelCity:
		if e.MunicipalityCode != "" {
			log.Printf("[RECONCILE] barangay %s declares municipality_code %s but %s is a city, reassigning", e.Code, e.MunicipalityCode, prefix)
		}
		e.CityCode, e.MunicipalityCode = prefix, ""
	case LevelMunicipality:
		if e.CityCode != "" {
			log.Printf("[RECONCILE] barangay %s declares city_code %s but %s is a municipality, reassigning", e.Code, e.CityCode, prefix)
		}
		e.CityCode, e.MunicipalityCode = "", prefix
	default:
		// The prefix is unknown to both the batch and the store:
		// honor a declared city link, otherwise repair with a
		// municipality placeholder.
		if e.CityCode != "" {
			r.synthesize(batch, report, LevelCity, prefix)
			e.CityCode, e.MunicipalityCode = prefix, ""
		} else {
			r.synthesize(batch, report, LevelMunicipality, prefix)
			e.CityCode, e.MunicipalityCode = "", prefix
		}
	}

	parent := e.CityCode
	if parent == "" {
		parent = e.MunicipalityCode
	}
	e.ProvinceCode = mustParent(parent, LevelProvince)
	e.RegionCode = mustParent(parent, LevelRegion)
}

// levelAt reports whether the code is known as a city or a
// municipality, checking the batch before the store's seen set.
// Returns "" when neither knows the code.
func (r *Reconciler) levelAt(batch *Batch, code string) Level {
	if batch.Cities[code] != nil {
		return LevelCity
	}
	if batch.Municipalities[code] != nil {
		return LevelMunicipality
	}
	switch r.Seen[code] {
	case LevelCity:
		return LevelCity
	case LevelMunicipality:
		return LevelMunicipality
	}
	return ""
}

func (r *Reconciler) ensureProvince(batch *Batch, report *ReconcileReport, code string) {
	if code == "" {
		return
	}
	if _, ok := batch.Provinces[code]; !ok {
		if _, seen := r.Seen[code]; !seen {
			r.synthesize(batch, report, LevelProvince, code)
		}
	}
	r.ensureRegion(batch, report, mustParent(code, LevelRegion))
}

func (r *Reconciler) ensureRegion(batch *Batch, report *ReconcileReport, code string) {
	if code == "" {
		return
	}
	if _, ok := batch.Regions[code]; ok {
		return
	}
	if _, seen := r.Seen[code]; seen {
		return
	}
	r.synthesize(batch, report, LevelRegion, code)
}

// synthesize creates a minimal placeholder ancestor. This is a
// deliberate repair policy, logged as a data-quality warning, never a
// silent drop.
func (r *Reconciler) synthesize(batch *Batch, report *ReconcileReport, level Level, code string) {
	placeholder := &Entity{
		Level:       level,
		Code:        code,
		Name:        levelTitle(level) + " " + code,
		Synthesized: true,
	}

	switch level {
	case LevelProvince:
		placeholder.RegionCode = mustParent(code, LevelRegion)
	case LevelCity, LevelMunicipality:
		placeholder.ProvinceCode = mustParent(code, LevelProvince)
		placeholder.RegionCode = mustParent(code, LevelRegion)
	}

	batch.Add(placeholder)
	report.Synthesized[level]++
	log.Printf("[RECONCILE] synthesized %s placeholder %s (ancestor missing from input)", level, code)

	// A placeholder needs its own ancestors too
	switch level {
	case LevelProvince:
		r.ensureRegion(batch, report, placeholder.RegionCode)
	case LevelCity, LevelMunicipality:
		r.ensureProvince(batch, report, placeholder.ProvinceCode)
	}
}

func (r *Reconciler) regionCodeOf(e *Entity) string {
	if e.RegionCode != "" {
		return e.RegionCode
	}
	return mustParent(e.Code, LevelRegion)
}

func (r *Reconciler) provinceCodeOf(e *Entity) string {
	if e.ProvinceCode != "" {
		return e.ProvinceCode
	}
	return mustParent(e.Code, LevelProvince)
}

// mustParent derives an ancestor code for input that classification
// has already validated. Derivation failing here would mean a broken
// invariant upstream, so it degrades to "" rather than panicking.
func mustParent(code string, target Level) string {
	parent, err := ParentCode(code, target)
	if err != nil {
		log.Printf("[RECONCILE] cannot derive %s ancestor of %s: %v", target, code, err)
		return ""
	}
	return parent
}

func levelTitle(level Level) string {
	switch level {
	case LevelRegion:
		return "Region"
	case LevelProvince:
		return "Province"
	case LevelCity:
		return "City"
	case LevelMunicipality:
		return "Municipality"
	case LevelBarangay:
		return "Barangay"
	}
	return string(level)
}
