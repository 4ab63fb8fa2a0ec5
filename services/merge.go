package services

import (
	"fmt"
	"log"

	"psgc_api_go/psgc"

	"gorm.io/gorm"
)

// MergeSourceFiles combines a baseline dataset with supplementary
// fetches, baseline winning on every conflict. Each file is classified
// and reconciled independently before the merge so every input set
// already satisfies the hierarchy invariants.
func MergeSourceFiles(baselinePath string, supplementPaths ...string) (*psgc.Batch, *psgc.MergeReport, error) {
	baseline, err := reconcileFile(baselinePath)
	if err != nil {
		return nil, nil, fmt.Errorf("baseline %s: %w", baselinePath, err)
	}

	supplements := make([]*psgc.Batch, 0, len(supplementPaths))
	for _, path := range supplementPaths {
		batch, err := reconcileFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("supplement %s: %w", path, err)
		}
		supplements = append(supplements, batch)
	}

	merged, report := psgc.Merge(baseline, supplements...)

	log.Printf("[MERGE] %d added from supplements, %d conflicts kept from baseline", report.TotalAdded(), report.Conflicts)
	if report.TotalAdded() > 0 {
		log.Printf("[MERGE] added codes (showing up to %d): %v", len(report.Preview()), report.Preview())
	}

	return merged, report, nil
}

// PersistMergedBatch writes a merged batch through the same upsert
// path as a normal import
func PersistMergedBatch(dbConn *gorm.DB, merged *psgc.Batch) error {
	return dbConn.Transaction(func(tx *gorm.DB) error {
		for _, entity := range merged.Ordered() {
			if err := upsertEntity(tx, entity); err != nil {
				return fmt.Errorf("failed to persist %s %s: %w", entity.Level, entity.Code, err)
			}
		}
		return nil
	})
}

func reconcileFile(path string) (*psgc.Batch, error) {
	records, err := ParseSourceFile(path)
	if err != nil {
		return nil, err
	}

	classifier := psgc.NewClassifier()
	var entities []*psgc.Entity
	for i, record := range records {
		entity, rejection := classifier.Classify(record, i)
		if rejection != nil {
			log.Printf("[MERGE] rejected record %d (%s): code=%q name=%q", rejection.SourceIndex, rejection.Reason, rejection.Code, rejection.Name)
			continue
		}
		entities = append(entities, entity)
	}

	batch, _ := psgc.NewReconciler(nil).Reconcile(entities)
	return batch, nil
}
