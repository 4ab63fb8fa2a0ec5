package psgc

import "strings"

// Entity is the classifier's tagged-variant output: one record at a
// resolved level with its level-specific attributes and candidate
// parent codes.
type Entity struct {
	Level Level  `json:"level"`
	Code  string `json:"code"`
	Name  string `json:"name"`

	// Region / Province
	IslandGroupCode string `json:"island_group_code,omitempty"`
	IslandGroupName string `json:"island_group_name,omitempty"`

	// City / Municipality
	CityClass   string `json:"city_class,omitempty"`
	IncomeClass string `json:"income_class,omitempty"`
	IsCapital   bool   `json:"is_capital,omitempty"`

	// Barangay
	UrbanRural string `json:"urban_rural,omitempty"`

	// Parent codes. For a barangay, CityCode/MunicipalityCode stay
	// empty unless the source declared one; the reconciler owns the
	// final assignment.
	RegionCode       string `json:"region_code,omitempty"`
	ProvinceCode     string `json:"province_code,omitempty"`
	CityCode         string `json:"city_code,omitempty"`
	MunicipalityCode string `json:"municipality_code,omitempty"`

	// Synthesized marks placeholder ancestors created by the
	// reconciler rather than records read from a source file.
	Synthesized bool `json:"synthesized,omitempty"`

	// MissingInBaseline marks entities contributed by a supplementary
	// dataset during a merge.
	MissingInBaseline bool `json:"missing_in_baseline,omitempty"`

	// SourceIndex is the record's position in the input batch, kept
	// for operator-facing diagnostics.
	SourceIndex int `json:"-"`
}

// CityDetector decides whether an XXYYZZ000-shaped record is a city
// rather than a municipality. It is injectable so an authoritative
// lookup table can replace the name-text heuristic without touching
// the rest of the pipeline.
type CityDetector func(raw RawRecord, name string) bool

// DefaultCityDetector applies the priority-ordered heuristic:
// an explicit "municipality of" name always forces municipality, then
// an unambiguous explicit level field, then the presence of a city
// classification (HUC/ICC/CC), then name-text signals. Absence of all
// signals defaults to municipality.
func DefaultCityDetector(raw RawRecord, name string) bool {
	lower := strings.ToLower(name)

	if strings.Contains(lower, "municipality of") {
		return false
	}

	switch strings.ToLower(raw.Field(FieldLevel)) {
	case "city", "cities":
		return true
	case "mun", "municipality", "municipalities":
		return false
	}

	if raw.HasField(FieldCityClass) {
		return true
	}

	if strings.Contains(lower, "city of") || strings.HasSuffix(lower, " city") {
		return true
	}
	for _, phrase := range []string{"highly urbanized", "independent component", "component city"} {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	return false
}

// Classifier turns raw records into classified entities. It is
// stateless: classifying the same record twice yields identical
// output.
type Classifier struct {
	DetectCity CityDetector
}

// NewClassifier returns a classifier using the default city heuristic
func NewClassifier() *Classifier {
	return &Classifier{DetectCity: DefaultCityDetector}
}

// Classify normalizes the record's code, resolves its level, and
// extracts level-specific attributes and candidate parent codes.
// Exactly one of the return values is non-nil.
func (c *Classifier) Classify(raw RawRecord, sourceIndex int) (*Entity, *Rejection) {
	rawCode := raw.Field(FieldCode)
	name := raw.Field(FieldName)

	if rawCode == "" {
		return nil, &Rejection{Reason: ReasonMissingCode, Name: name, SourceIndex: sourceIndex}
	}
	if name == "" {
		return nil, &Rejection{Reason: ReasonMissingName, Code: rawCode, SourceIndex: sourceIndex}
	}

	code, err := NormalizeCode(rawCode)
	if err != nil {
		return nil, &Rejection{Reason: ReasonInvalidCode, Code: rawCode, Name: name, SourceIndex: sourceIndex}
	}

	level, err := ClassifyCode(code)
	if err != nil {
		return nil, &Rejection{Reason: ReasonUnclassifiableCode, Code: code, Name: name, SourceIndex: sourceIndex}
	}

	entity := &Entity{Code: code, Name: name, SourceIndex: sourceIndex}

	switch level {
	case LevelRegion:
		entity.Level = LevelRegion
		entity.IslandGroupCode = raw.Field(FieldIslandGroupCode)
		entity.IslandGroupName = raw.Field(FieldIslandGroupName)

	case LevelProvince:
		entity.Level = LevelProvince
		entity.IslandGroupCode = raw.Field(FieldIslandGroupCode)
		entity.RegionCode = c.parentOrDerived(raw, FieldRegionCode, code, LevelRegion)

	case LevelCityMunicipality:
		if c.detectCity(raw, name) {
			entity.Level = LevelCity
			entity.CityClass = raw.Field(FieldCityClass)
		} else {
			entity.Level = LevelMunicipality
		}
		entity.IncomeClass = raw.Field(FieldIncomeClass)
		entity.IsCapital = parseBool(raw.Field(FieldCapital))
		entity.ProvinceCode = c.parentOrDerived(raw, FieldProvinceCode, code, LevelProvince)
		entity.RegionCode = c.parentOrDerived(raw, FieldRegionCode, code, LevelRegion)

	case LevelBarangay:
		entity.Level = LevelBarangay
		entity.UrbanRural = raw.Field(FieldUrbanRural)
		entity.ProvinceCode = c.parentOrDerived(raw, FieldProvinceCode, code, LevelProvince)
		entity.RegionCode = c.parentOrDerived(raw, FieldRegionCode, code, LevelRegion)
		// Only explicit city/municipality parents are kept here; the
		// reconciler resolves the rest against the batch's sibling
		// tables.
		if explicit, err := NormalizeCode(raw.Field(FieldCityCode)); err == nil && raw.HasField(FieldCityCode) {
			entity.CityCode = explicit
		}
		if explicit, err := NormalizeCode(raw.Field(FieldMunicipalityCode)); err == nil && raw.HasField(FieldMunicipalityCode) {
			entity.MunicipalityCode = explicit
		}
	}

	return entity, nil
}

func (c *Classifier) detectCity(raw RawRecord, name string) bool {
	if c.DetectCity != nil {
		return c.DetectCity(raw, name)
	}
	return DefaultCityDetector(raw, name)
}

// parentOrDerived prefers an explicit parent code supplied by the
// source, falling back to positional derivation when the field is
// absent or unusable.
func (c *Classifier) parentOrDerived(raw RawRecord, field, code string, target Level) string {
	if explicit := raw.Field(field); explicit != "" {
		if normalized, err := NormalizeCode(explicit); err == nil {
			return normalized
		}
	}
	derived, err := ParentCode(code, target)
	if err != nil {
		return ""
	}
	return derived
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}
