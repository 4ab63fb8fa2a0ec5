package psgc

import "strings"

// RawRecord is one source row after format-specific parsing: a flat
// field-name → value mapping. Field names vary wildly across providers
// (code/Code/CODE/PSGC, name/Geographic Area, ...), so lookups go
// through a fixed priority list of known aliases per logical field.
type RawRecord map[string]string

// Logical field names used by the classifier
const (
	FieldCode             = "code"
	FieldName             = "name"
	FieldLevel            = "level"
	FieldCityClass        = "city_class"
	FieldIncomeClass      = "income_class"
	FieldUrbanRural       = "urban_rural"
	FieldCapital          = "is_capital"
	FieldIslandGroupCode  = "island_group_code"
	FieldIslandGroupName  = "island_group_name"
	FieldRegionCode       = "region_code"
	FieldProvinceCode     = "province_code"
	FieldCityCode         = "city_code"
	FieldMunicipalityCode = "municipality_code"
)

// fieldAliases maps each logical field to its known source spellings,
// in priority order. Earlier aliases win when a row carries several.
var fieldAliases = map[string][]string{
	FieldCode:             {"code", "psgc", "psgc_code", "10-digit psgc", "correspondence code"},
	FieldName:             {"name", "geographic area", "area_name", "adm_name"},
	FieldLevel:            {"level", "geographic level", "geo_level", "type"},
	FieldCityClass:        {"city_class", "city class", "cityclass", "class"},
	FieldIncomeClass:      {"income_class", "income class", "income classification", "incomeclass"},
	FieldUrbanRural:       {"urban_rural", "urban / rural", "urban-rural", "urbanrural"},
	FieldCapital:          {"is_capital", "capital", "is capital"},
	FieldIslandGroupCode:  {"island_group_code", "island group code", "islandgroupcode"},
	FieldIslandGroupName:  {"island_group_name", "island group name", "island group", "islandgroupname"},
	FieldRegionCode:       {"region_code", "region code", "regioncode"},
	FieldProvinceCode:     {"province_code", "province code", "provincecode"},
	FieldCityCode:         {"city_code", "city code", "citycode"},
	FieldMunicipalityCode: {"municipality_code", "municipality code", "municipalitycode"},
}

// Field resolves a logical field against the record's actual keys.
// Matching is case-insensitive; the first alias present and non-empty
// wins. Returns "" when no alias matches.
func (r RawRecord) Field(logical string) string {
	aliases, ok := fieldAliases[logical]
	if !ok {
		return strings.TrimSpace(r[logical])
	}

	for _, alias := range aliases {
		// Fast path: exact key
		if v := strings.TrimSpace(r[alias]); v != "" {
			return v
		}
		for key, value := range r {
			if strings.EqualFold(strings.TrimSpace(key), alias) {
				if v := strings.TrimSpace(value); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// HasField reports whether any alias of the logical field is present
// with a non-empty value
func (r RawRecord) HasField(logical string) bool {
	return r.Field(logical) != ""
}
