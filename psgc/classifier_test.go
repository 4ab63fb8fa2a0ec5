package psgc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRegion(t *testing.T) {
	c := NewClassifier()

	entity, rejection := c.Classify(RawRecord{
		"code":              "130000000",
		"name":              "National Capital Region (NCR)",
		"island_group_code": "luzon",
		"island_group_name": "Luzon",
	}, 0)

	assert.Nil(t, rejection)
	assert.Equal(t, LevelRegion, entity.Level)
	assert.Equal(t, "130000000", entity.Code)
	assert.Equal(t, "luzon", entity.IslandGroupCode)
	assert.Equal(t, "Luzon", entity.IslandGroupName)
	assert.Empty(t, entity.RegionCode)
}

func TestClassifyCityOfManila(t *testing.T) {
	c := NewClassifier()

	entity, rejection := c.Classify(RawRecord{
		"code": "137401000",
		"name": "City of Manila",
	}, 0)

	assert.Nil(t, rejection)
	assert.Equal(t, LevelCity, entity.Level)
	assert.Equal(t, "137401000", entity.Code)
	assert.Equal(t, "137400000", entity.ProvinceCode)
	assert.Equal(t, "130000000", entity.RegionCode)
}

func TestCityMunicipalityDisambiguation(t *testing.T) {
	tests := []struct {
		name     string
		record   RawRecord
		expected Level
	}{
		{
			name:     "explicit level field wins",
			record:   RawRecord{"code": "042108000", "name": "Dasmarinas", "level": "City"},
			expected: LevelCity,
		},
		{
			name:     "explicit municipality level",
			record:   RawRecord{"code": "042111000", "name": "Maragondon", "level": "Mun"},
			expected: LevelMunicipality,
		},
		{
			name:     "city class attribute implies city",
			record:   RawRecord{"code": "042108000", "name": "Dasmarinas", "city_class": "CC"},
			expected: LevelCity,
		},
		{
			name:     "city of prefix",
			record:   RawRecord{"code": "137401000", "name": "City of Manila"},
			expected: LevelCity,
		},
		{
			name:     "city suffix",
			record:   RawRecord{"code": "137404000", "name": "Quezon City"},
			expected: LevelCity,
		},
		{
			name:     "highly urbanized qualifier",
			record:   RawRecord{"code": "072217000", "name": "Cebu (Highly Urbanized)"},
			expected: LevelCity,
		},
		{
			name:     "municipality of overrides a city class",
			record:   RawRecord{"code": "137406000", "name": "Municipality of Pateros", "city_class": "CC"},
			expected: LevelMunicipality,
		},
		{
			name:     "no signal defaults to municipality",
			record:   RawRecord{"code": "042111000", "name": "Maragondon"},
			expected: LevelMunicipality,
		},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity, rejection := c.Classify(tt.record, 0)
			assert.Nil(t, rejection)
			assert.Equal(t, tt.expected, entity.Level)
		})
	}
}

func TestCityDetectorIsInjectable(t *testing.T) {
	// An authoritative lookup table can replace the name heuristic
	authoritative := map[string]bool{"042111000": true}
	c := &Classifier{DetectCity: func(raw RawRecord, name string) bool {
		code, _ := NormalizeCode(raw.Field(FieldCode))
		return authoritative[code]
	}}

	entity, rejection := c.Classify(RawRecord{"code": "042111000", "name": "Maragondon"}, 0)
	assert.Nil(t, rejection)
	assert.Equal(t, LevelCity, entity.Level)
}

func TestClassifyBarangay(t *testing.T) {
	c := NewClassifier()

	t.Run("explicit city code is preserved", func(t *testing.T) {
		entity, rejection := c.Classify(RawRecord{
			"code":      "137401001",
			"name":      "Barangay 1",
			"city_code": "137401000",
		}, 0)

		assert.Nil(t, rejection)
		assert.Equal(t, LevelBarangay, entity.Level)
		assert.Equal(t, "137401000", entity.CityCode)
		assert.Empty(t, entity.MunicipalityCode)
		// Prefix check: first six digits + 000 equals the declared parent
		assert.Equal(t, entity.Code[:6]+"000", entity.CityCode)
		assert.Equal(t, "137400000", entity.ProvinceCode)
		assert.Equal(t, "130000000", entity.RegionCode)
	})

	t.Run("no explicit parent leaves both unset", func(t *testing.T) {
		entity, rejection := c.Classify(RawRecord{
			"code":        "042111001",
			"name":        "Poblacion",
			"urban_rural": "R",
		}, 0)

		assert.Nil(t, rejection)
		assert.Equal(t, LevelBarangay, entity.Level)
		assert.Empty(t, entity.CityCode)
		assert.Empty(t, entity.MunicipalityCode)
		assert.Equal(t, "R", entity.UrbanRural)
	})
}

func TestClassifyFieldAliases(t *testing.T) {
	c := NewClassifier()

	entity, rejection := c.Classify(RawRecord{
		"10-digit PSGC":   "0137401000",
		"Geographic Area": "City of Manila",
	}, 0)

	assert.Nil(t, rejection)
	assert.Equal(t, "137401000", entity.Code)
	assert.Equal(t, "City of Manila", entity.Name)
	assert.Equal(t, LevelCity, entity.Level)
}

func TestClassifyRejections(t *testing.T) {
	tests := []struct {
		name     string
		record   RawRecord
		expected RejectReason
	}{
		{
			name:     "missing code",
			record:   RawRecord{"name": "Nameless"},
			expected: ReasonMissingCode,
		},
		{
			name:     "missing name",
			record:   RawRecord{"code": "137401000"},
			expected: ReasonMissingName,
		},
		{
			name:     "invalid code",
			record:   RawRecord{"code": "N/A", "name": "Broken"},
			expected: ReasonInvalidCode,
		},
		{
			name:     "all-zero code",
			record:   RawRecord{"code": "000000000", "name": "Nowhere"},
			expected: ReasonInvalidCode,
		},
	}

	c := NewClassifier()
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity, rejection := c.Classify(tt.record, i)
			assert.Nil(t, entity)
			assert.NotNil(t, rejection)
			assert.Equal(t, tt.expected, rejection.Reason)
			assert.Equal(t, i, rejection.SourceIndex)
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	c := NewClassifier()
	record := RawRecord{"code": "042111001", "name": "Poblacion", "urban_rural": "R"}

	first, rej1 := c.Classify(record, 3)
	second, rej2 := c.Classify(record, 3)

	assert.Nil(t, rej1)
	assert.Nil(t, rej2)
	assert.Equal(t, first, second)
}
