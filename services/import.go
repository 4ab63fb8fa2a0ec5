package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"psgc_api_go/models"
	"psgc_api_go/psgc"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImportOptions controls one run of the import pipeline
type ImportOptions struct {
	SourceFile string
	DryRun     bool
	// Detector optionally replaces the default city/municipality
	// heuristic (e.g. with an authoritative lookup table).
	Detector psgc.CityDetector
	// Progress is called after each persisted entity with the running
	// count and the reconciled batch size; the CLI hooks a progress bar
	// here. The total can differ from the raw record count because of
	// synthesized placeholders and rejections.
	Progress func(done, total int)
}

// ImportResult contains the summary of the import process
type ImportResult struct {
	RunID      string
	Report     *psgc.ReconcileReport
	Rejections []psgc.Rejection
}

// ParseSourceFile reads one source file into raw records, picking the
// parser by extension. Past this boundary the pipeline is
// format-agnostic.
func ParseSourceFile(path string) ([]psgc.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(f)
	case ".json":
		return ParseJSON(f)
	case ".xlsx", ".xls":
		return ParseExcel(f)
	default:
		return nil, fmt.Errorf("unsupported source format %q", filepath.Ext(path))
	}
}

// ParseCSV reads a header-mapped CSV into raw records
func ParseCSV(r io.Reader) ([]psgc.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Providers pad rows inconsistently

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var records []psgc.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		record := make(psgc.RawRecord, len(header))
		for i, value := range row {
			if i < len(header) {
				record[strings.TrimSpace(header[i])] = value
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// ParseJSON reads an array of flat objects into raw records
func ParseJSON(r io.Reader) ([]psgc.RawRecord, error) {
	decoder := json.NewDecoder(r)
	// Codes arrive as bare numbers in some feeds; json.Number keeps
	// them from turning into scientific notation.
	decoder.UseNumber()

	var rows []map[string]interface{}
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode JSON source: %w", err)
	}

	records := make([]psgc.RawRecord, 0, len(rows))
	for _, row := range rows {
		record := make(psgc.RawRecord, len(row))
		for key, value := range row {
			switch v := value.(type) {
			case nil:
				record[key] = ""
			case string:
				record[key] = v
			case bool:
				if v {
					record[key] = "true"
				} else {
					record[key] = "false"
				}
			case json.Number:
				record[key] = v.String()
			default:
				record[key] = fmt.Sprintf("%v", v)
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// ParseExcel reads the first sheet of a workbook into raw records,
// treating the first row as the header
func ParseExcel(r io.Reader) ([]psgc.RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("invalid excel format: no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("invalid excel format: empty sheet")
	}

	header := rows[0]
	var records []psgc.RawRecord
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		record := make(psgc.RawRecord, len(header))
		for i, value := range row {
			if i < len(header) {
				record[strings.TrimSpace(header[i])] = value
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// ImportBatch classifies, reconciles, and persists one batch of raw
// records inside a single transaction, writing parents before children
// so the store's foreign keys hold. Per-record failures are logged and
// excluded; they never abort the batch. A write rejected after
// reconciliation means a broken hierarchy invariant and fails the run.
func ImportBatch(dbConn *gorm.DB, records []psgc.RawRecord, opts ImportOptions) (*ImportResult, error) {
	classifier := psgc.NewClassifier()
	if opts.Detector != nil {
		classifier.DetectCity = opts.Detector
	}

	result := &ImportResult{}
	var entities []*psgc.Entity
	for i, record := range records {
		entity, rejection := classifier.Classify(record, i)
		if rejection != nil {
			result.Rejections = append(result.Rejections, *rejection)
			log.Printf("[IMPORT] rejected record %d (%s): code=%q name=%q", rejection.SourceIndex, rejection.Reason, rejection.Code, rejection.Name)
			continue
		}
		entities = append(entities, entity)
	}

	seen, err := loadSeenCodes(dbConn)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing codes: %w", err)
	}

	batch, report := psgc.NewReconciler(seen).Reconcile(entities)
	report.Rejected = len(result.Rejections)
	result.Report = report

	if opts.DryRun {
		log.Printf("[IMPORT] dry run: %d created, %d synthesized, %d duplicates, %d rejected",
			report.TotalCreated(), report.TotalSynthesized(), report.TotalDuplicates(), report.Rejected)
		return result, nil
	}

	run := &models.ImportRun{
		SourceFile:  opts.SourceFile,
		DryRun:      opts.DryRun,
		Created:     report.TotalCreated(),
		Synthesized: report.TotalSynthesized(),
		Duplicates:  report.TotalDuplicates(),
		Rejected:    report.Rejected,
		StartedAt:   time.Now(),
	}

	total := batch.Len()
	err = dbConn.Transaction(func(tx *gorm.DB) error {
		for done, entity := range batch.Ordered() {
			if err := upsertEntity(tx, entity); err != nil {
				return fmt.Errorf("failed to persist %s %s: %w", entity.Level, entity.Code, err)
			}
			if opts.Progress != nil {
				opts.Progress(done+1, total)
			}
		}

		finished := time.Now()
		run.FinishedAt = &finished
		return tx.Create(run).Error
	})
	if err != nil {
		return nil, err
	}

	result.RunID = run.ID
	log.Printf("[IMPORT] run %s: %d created, %d synthesized, %d duplicates, %d rejected",
		run.ID, run.Created, run.Synthesized, run.Duplicates, run.Rejected)
	return result, nil
}

// upsertEntity writes one entity with INSERT OR REPLACE semantics
// (upsert-by-code, last import wins)
func upsertEntity(tx *gorm.DB, e *psgc.Entity) error {
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		UpdateAll: true,
	}

	switch e.Level {
	case psgc.LevelRegion:
		return tx.Clauses(onConflict).Create(&models.Region{
			Code:            e.Code,
			Name:            e.Name,
			IslandGroupCode: e.IslandGroupCode,
			IslandGroupName: e.IslandGroupName,
		}).Error
	case psgc.LevelProvince:
		return tx.Clauses(onConflict).Create(&models.Province{
			Code:            e.Code,
			Name:            e.Name,
			IslandGroupCode: e.IslandGroupCode,
			RegionCode:      e.RegionCode,
		}).Error
	case psgc.LevelCity:
		return tx.Clauses(onConflict).Create(&models.City{
			Code:         e.Code,
			Name:         e.Name,
			CityClass:    e.CityClass,
			IncomeClass:  e.IncomeClass,
			IsCapital:    e.IsCapital,
			ProvinceCode: e.ProvinceCode,
			RegionCode:   e.RegionCode,
		}).Error
	case psgc.LevelMunicipality:
		return tx.Clauses(onConflict).Create(&models.Municipality{
			Code:         e.Code,
			Name:         e.Name,
			IncomeClass:  e.IncomeClass,
			IsCapital:    e.IsCapital,
			ProvinceCode: e.ProvinceCode,
			RegionCode:   e.RegionCode,
		}).Error
	case psgc.LevelBarangay:
		return tx.Clauses(onConflict).Create(&models.Barangay{
			Code:             e.Code,
			Name:             e.Name,
			UrbanRural:       e.UrbanRural,
			CityCode:         nilIfEmpty(e.CityCode),
			MunicipalityCode: nilIfEmpty(e.MunicipalityCode),
			ProvinceCode:     e.ProvinceCode,
			RegionCode:       e.RegionCode,
		}).Error
	}
	return fmt.Errorf("unknown level %q", e.Level)
}

// loadSeenCodes builds the already-persisted code set handed to the
// reconciler, so re-imports dedup against the store rather than
// against ambient global state
func loadSeenCodes(dbConn *gorm.DB) (map[string]psgc.Level, error) {
	seen := make(map[string]psgc.Level)

	tables := []struct {
		model interface{}
		level psgc.Level
	}{
		{&models.Region{}, psgc.LevelRegion},
		{&models.Province{}, psgc.LevelProvince},
		{&models.City{}, psgc.LevelCity},
		{&models.Municipality{}, psgc.LevelMunicipality},
		{&models.Barangay{}, psgc.LevelBarangay},
	}

	for _, table := range tables {
		var codes []string
		if err := dbConn.Model(table.model).Pluck("code", &codes).Error; err != nil {
			return nil, err
		}
		for _, code := range codes {
			seen[code] = table.level
		}
	}
	return seen, nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
