package services

import (
	"os"
	"path/filepath"
	"testing"

	"psgc_api_go/models"

	"github.com/stretchr/testify/assert"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMergeSourceFiles(t *testing.T) {
	baseline := writeCSV(t, "baseline.csv",
		"code,name\n130000000,National Capital Region\n")
	supplement := writeCSV(t, "supplement.csv",
		"code,name\n130000000,NCR (different spelling)\n040000000,CALABARZON\n")

	merged, report, err := MergeSourceFiles(baseline, supplement)
	assert.NoError(t, err)

	// Baseline wins on the shared code; the supplement-only code is added
	assert.Equal(t, "National Capital Region", merged.Regions["130000000"].Name)
	assert.Equal(t, "CALABARZON", merged.Regions["040000000"].Name)
	assert.True(t, merged.Regions["040000000"].MissingInBaseline)
	assert.Equal(t, 1, report.Conflicts)
	assert.Equal(t, []string{"040000000"}, report.AddedCodes)
}

func TestMergeSourceFilesSkipsBadRecords(t *testing.T) {
	baseline := writeCSV(t, "baseline.csv",
		"code,name\n130000000,NCR\n,Missing Code\n")
	supplement := writeCSV(t, "supplement.csv", "code,name\n")

	merged, report, err := MergeSourceFiles(baseline, supplement)
	assert.NoError(t, err)
	assert.Equal(t, 1, merged.Len())
	assert.Equal(t, 0, report.TotalAdded())
}

func TestPersistMergedBatch(t *testing.T) {
	testDB := setupTestDB(t)

	baseline := writeCSV(t, "baseline.csv",
		"code,name\n130000000,NCR\n")
	supplement := writeCSV(t, "supplement.csv",
		"code,name\n040000000,CALABARZON\n")

	merged, _, err := MergeSourceFiles(baseline, supplement)
	assert.NoError(t, err)
	assert.NoError(t, PersistMergedBatch(testDB, merged))

	var count int64
	testDB.Model(&models.Region{}).Count(&count)
	assert.Equal(t, int64(2), count)
}
