package services

import (
	"testing"

	"psgc_api_go/models"
	"psgc_api_go/psgc"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func seedManila(t *testing.T) *gorm.DB {
	t.Helper()
	testDB := setupTestDB(t)
	_, err := ImportBatch(testDB, []psgc.RawRecord{
		{"code": "130000000", "name": "National Capital Region (NCR)"},
		{"code": "137400000", "name": "NCR, Fourth District"},
		{"code": "137401000", "name": "City of Manila", "city_class": "HUC"},
		{"code": "137401001", "name": "Barangay 1"},
		{"code": "040000000", "name": "CALABARZON"},
		{"code": "042100000", "name": "Cavite"},
		{"code": "042111000", "name": "Maragondon"},
		{"code": "042111001", "name": "Poblacion"},
	}, ImportOptions{SourceFile: "seed.csv"})
	assert.NoError(t, err)
	return testDB
}

func TestGetByCodeAndChildren(t *testing.T) {
	testDB := seedManila(t)

	region, err := GetRegionByCode(testDB, "130000000")
	assert.NoError(t, err)
	assert.Equal(t, "National Capital Region (NCR)", region.Name)

	provinces, err := GetProvincesByRegion(testDB, "130000000")
	assert.NoError(t, err)
	assert.Len(t, provinces, 1)
	assert.Equal(t, "137400000", provinces[0].Code)

	cities, err := GetCitiesByProvince(testDB, "137400000")
	assert.NoError(t, err)
	assert.Len(t, cities, 1)

	barangays, err := GetBarangaysByCity(testDB, "137401000")
	assert.NoError(t, err)
	assert.Len(t, barangays, 1)

	municipalities, err := GetMunicipalitiesByRegion(testDB, "040000000")
	assert.NoError(t, err)
	assert.Len(t, municipalities, 1)

	barangays, err = GetBarangaysByMunicipality(testDB, "042111000")
	assert.NoError(t, err)
	assert.Len(t, barangays, 1)
	assert.Equal(t, "042111001", barangays[0].Code)
}

func TestGetByCodeNotFound(t *testing.T) {
	testDB := seedManila(t)

	_, err := GetRegionByCode(testDB, "990000000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSearchByName(t *testing.T) {
	testDB := seedManila(t)

	t.Run("substring match across levels", func(t *testing.T) {
		results, err := SearchByName(testDB, "manila", "", 0)
		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "137401000", results[0].Code)
		assert.Equal(t, psgc.LevelCity, results[0].Level)
	})

	t.Run("type filter", func(t *testing.T) {
		results, err := SearchByName(testDB, "a", psgc.LevelMunicipality, 0)
		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "Maragondon", results[0].Name)
	})

	t.Run("limit", func(t *testing.T) {
		results, err := SearchByName(testDB, "a", "", 3)
		assert.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("no match", func(t *testing.T) {
		results, err := SearchByName(testDB, "zzz", "", 0)
		assert.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestCountsByLevel(t *testing.T) {
	testDB := seedManila(t)

	counts, err := CountsByLevel(testDB)
	assert.NoError(t, err)
	assert.Equal(t, 2, counts[psgc.LevelRegion])
	assert.Equal(t, 2, counts[psgc.LevelProvince])
	assert.Equal(t, 1, counts[psgc.LevelCity])
	assert.Equal(t, 1, counts[psgc.LevelMunicipality])
	assert.Equal(t, 2, counts[psgc.LevelBarangay])
}

func TestServeTimeModelsCarryNoWritePath(t *testing.T) {
	// Entities come from the import pipeline only; a read query on an
	// empty store is simply empty, never an error.
	testDB := setupTestDB(t)

	regions, err := GetRegions(testDB)
	assert.NoError(t, err)
	assert.Empty(t, regions)

	var runs []models.ImportRun
	assert.NoError(t, testDB.Find(&runs).Error)
	assert.Empty(t, runs)
}
