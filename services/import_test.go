package services

import (
	"bytes"
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"psgc_api_go/models"
	"psgc_api_go/psgc"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Region{},
		&models.Province{},
		&models.City{},
		&models.Municipality{},
		&models.Barangay{},
		&models.ImportRun{},
	)
	assert.NoError(t, err)

	return testDB
}

func manilaRecords() []psgc.RawRecord {
	return []psgc.RawRecord{
		{"code": "130000000", "name": "National Capital Region (NCR)", "island_group_name": "Luzon"},
		{"code": "137400000", "name": "NCR, Fourth District"},
		{"code": "137401000", "name": "City of Manila", "city_class": "HUC", "is_capital": "yes"},
		{"code": "137401001", "name": "Barangay 1", "urban_rural": "U"},
	}
}

func TestImportBatchPersistsHierarchy(t *testing.T) {
	testDB := setupTestDB(t)

	result, err := ImportBatch(testDB, manilaRecords(), ImportOptions{SourceFile: "manila.csv"})
	assert.NoError(t, err)
	assert.Equal(t, 4, result.Report.TotalCreated())
	assert.Equal(t, 0, result.Report.TotalSynthesized())
	assert.Empty(t, result.Rejections)

	var region models.Region
	assert.NoError(t, testDB.First(&region, "code = ?", "130000000").Error)
	assert.Equal(t, "National Capital Region (NCR)", region.Name)
	assert.Equal(t, "Luzon", region.IslandGroupName)

	var city models.City
	assert.NoError(t, testDB.First(&city, "code = ?", "137401000").Error)
	assert.Equal(t, "HUC", city.CityClass)
	assert.True(t, city.IsCapital)
	assert.Equal(t, "137400000", city.ProvinceCode)

	var barangay models.Barangay
	assert.NoError(t, testDB.First(&barangay, "code = ?", "137401001").Error)
	assert.NotNil(t, barangay.CityCode)
	assert.Equal(t, "137401000", *barangay.CityCode)
	assert.Nil(t, barangay.MunicipalityCode)

	var run models.ImportRun
	assert.NoError(t, testDB.First(&run, "id = ?", result.RunID).Error)
	assert.Equal(t, "manila.csv", run.SourceFile)
	assert.Equal(t, 4, run.Created)
	assert.NotNil(t, run.FinishedAt)
}

func TestImportBatchSynthesizesAndPersistsAncestors(t *testing.T) {
	testDB := setupTestDB(t)

	result, err := ImportBatch(testDB, []psgc.RawRecord{
		{"code": "042111001", "name": "Poblacion"},
	}, ImportOptions{SourceFile: "orphan.csv"})
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Report.TotalSynthesized())

	var municipality models.Municipality
	assert.NoError(t, testDB.First(&municipality, "code = ?", "042111000").Error)
	assert.Equal(t, "Municipality 042111000", municipality.Name)

	var province models.Province
	assert.NoError(t, testDB.First(&province, "code = ?", "042100000").Error)

	var region models.Region
	assert.NoError(t, testDB.First(&region, "code = ?", "040000000").Error)
}

func TestImportBatchUpsertByCode(t *testing.T) {
	testDB := setupTestDB(t)

	_, err := ImportBatch(testDB, []psgc.RawRecord{
		{"code": "130000000", "name": "NCR"},
	}, ImportOptions{SourceFile: "first.csv"})
	assert.NoError(t, err)

	// Re-import with a new spelling: last import wins
	result, err := ImportBatch(testDB, []psgc.RawRecord{
		{"code": "130000000", "name": "National Capital Region"},
	}, ImportOptions{SourceFile: "second.csv"})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Report.Duplicates[psgc.LevelRegion])

	var count int64
	testDB.Model(&models.Region{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var region models.Region
	assert.NoError(t, testDB.First(&region, "code = ?", "130000000").Error)
	assert.Equal(t, "National Capital Region", region.Name)
}

func TestImportBatchReimportSkipsSynthesisForPersistedAncestors(t *testing.T) {
	testDB := setupTestDB(t)

	_, err := ImportBatch(testDB, manilaRecords(), ImportOptions{SourceFile: "base.csv"})
	assert.NoError(t, err)

	// A later batch adding one more barangay finds its ancestors in
	// the store, so nothing is synthesized.
	result, err := ImportBatch(testDB, []psgc.RawRecord{
		{"code": "137401002", "name": "Barangay 2"},
	}, ImportOptions{SourceFile: "delta.csv"})
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Report.TotalSynthesized())

	var barangay models.Barangay
	assert.NoError(t, testDB.First(&barangay, "code = ?", "137401002").Error)
	assert.NotNil(t, barangay.CityCode)
	assert.Equal(t, "137401000", *barangay.CityCode)
}

func TestImportBatchReassignsBarangayDeclaredParentLevel(t *testing.T) {
	testDB := setupTestDB(t)

	// The declared city_code points at a code that is really a
	// municipality; persisting it as a city link would violate the
	// barangay foreign keys.
	result, err := ImportBatch(testDB, []psgc.RawRecord{
		{"code": "040000000", "name": "CALABARZON"},
		{"code": "042100000", "name": "Cavite"},
		{"code": "042111000", "name": "Maragondon"},
		{"code": "042111001", "name": "Poblacion", "city_code": "042111000"},
	}, ImportOptions{SourceFile: "declared.csv"})
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Report.TotalSynthesized())

	var barangay models.Barangay
	assert.NoError(t, testDB.First(&barangay, "code = ?", "042111001").Error)
	assert.Nil(t, barangay.CityCode)
	assert.NotNil(t, barangay.MunicipalityCode)
	assert.Equal(t, "042111000", *barangay.MunicipalityCode)

	var cityCount int64
	testDB.Model(&models.City{}).Count(&cityCount)
	assert.Equal(t, int64(0), cityCount)
}

func TestImportBatchProgressCoversPersistedEntities(t *testing.T) {
	testDB := setupTestDB(t)

	// One orphan barangay persists four entities (itself plus three
	// placeholders); progress must track that total, not the raw
	// record count.
	var dones, totals []int
	_, err := ImportBatch(testDB, []psgc.RawRecord{
		{"code": "042111001", "name": "Poblacion"},
	}, ImportOptions{
		SourceFile: "orphan.csv",
		Progress: func(done, total int) {
			dones = append(dones, done)
			totals = append(totals, total)
		},
	})
	assert.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4}, dones)
	for _, total := range totals {
		assert.Equal(t, 4, total)
	}
}

func TestImportBatchDryRunWritesNothing(t *testing.T) {
	testDB := setupTestDB(t)

	result, err := ImportBatch(testDB, manilaRecords(), ImportOptions{SourceFile: "manila.csv", DryRun: true})
	assert.NoError(t, err)
	assert.Equal(t, 4, result.Report.TotalCreated())
	assert.Empty(t, result.RunID)

	var count int64
	testDB.Model(&models.Region{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestImportBatchRecoversPerRecordFailures(t *testing.T) {
	testDB := setupTestDB(t)

	result, err := ImportBatch(testDB, []psgc.RawRecord{
		{"code": "130000000", "name": "NCR"},
		{"code": "", "name": "No code"},
		{"code": "N/A", "name": "Bad code"},
		{"code": "137400000"},
	}, ImportOptions{SourceFile: "dirty.csv"})
	assert.NoError(t, err)

	assert.Len(t, result.Rejections, 3)
	assert.Equal(t, 3, result.Report.Rejected)

	reasons := make(map[psgc.RejectReason]int)
	for _, rejection := range result.Rejections {
		reasons[rejection.Reason]++
	}
	assert.Equal(t, 1, reasons[psgc.ReasonMissingCode])
	assert.Equal(t, 1, reasons[psgc.ReasonInvalidCode])
	assert.Equal(t, 1, reasons[psgc.ReasonMissingName])

	// The valid record still lands
	var count int64
	testDB.Model(&models.Region{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestParseCSV(t *testing.T) {
	input := "code,name,city_class\n137401000,City of Manila,HUC\n137401001,Barangay 1,\n"

	records, err := ParseCSV(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "137401000", records[0]["code"])
	assert.Equal(t, "City of Manila", records[0]["name"])
	assert.Equal(t, "HUC", records[0]["city_class"])
}

func TestParseCSVRaggedRows(t *testing.T) {
	input := "code,name,city_class\n137401000,City of Manila\n"

	records, err := ParseCSV(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "", records[0].Field(psgc.FieldCityClass))
}

func TestParseJSON(t *testing.T) {
	input := `[{"code": 137401000, "name": "City of Manila", "is_capital": true}]`

	records, err := ParseJSON(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	// Numeric codes must survive without scientific notation
	assert.Equal(t, "137401000", records[0]["code"])
	assert.Equal(t, "true", records[0]["is_capital"])
}

func TestParseExcel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	assert.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"10-digit PSGC", "Geographic Area"}))
	assert.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]string{"0137401000", "City of Manila"}))

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)

	records, err := ParseExcel(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "0137401000", records[0].Field(psgc.FieldCode))
	assert.Equal(t, "City of Manila", records[0].Field(psgc.FieldName))
}

func TestParseSourceFileUnsupportedFormat(t *testing.T) {
	path := t.TempDir() + "/source.xml"
	assert.NoError(t, os.WriteFile(path, []byte("<psgc/>"), 0o644))

	_, err := ParseSourceFile(path)
	assert.ErrorContains(t, err, "unsupported source format")
}
