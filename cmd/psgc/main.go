package main

import (
	"fmt"
	"log"
	"os"

	"psgc_api_go/config"
	"psgc_api_go/db"
	"psgc_api_go/models"
	"psgc_api_go/psgc"
	"psgc_api_go/services"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	dryRun        bool
	persist       bool
	dbPath        string
	standardsPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "psgc",
		Short: "PSGC dataset import and diagnostics",
		Long:  "Offline maintenance tooling for the PSGC store: import source files, merge datasets, and check counts against the PSA reference totals.",
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file path (overrides DB_PATH)")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a CSV/JSON/Excel source file into the store",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "classify and reconcile without writing")

	mergeCmd := &cobra.Command{
		Use:   "merge <baseline> <supplement>...",
		Short: "Merge supplementary datasets into a baseline, baseline winning on conflict",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runMerge,
	}
	mergeCmd.Flags().BoolVar(&persist, "persist", false, "write the merged dataset to the store")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Compare store counts against the PSA reference totals",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
	validateCmd.Flags().StringVar(&standardsPath, "standards", "", "reference totals file (overrides STANDARDS_PATH)")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-level entity counts",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}

	rootCmd.AddCommand(importCmd, mergeCmd, validateCmd, statsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore() (*config.Config, error) {
	cfg := config.Load()
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if standardsPath != "" {
		cfg.StandardsPath = standardsPath
	}
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		return nil, err
	}
	err := db.AutoMigrate(
		&models.Region{},
		&models.Province{},
		&models.City{},
		&models.Municipality{},
		&models.Barangay{},
		&models.ImportRun{},
	)
	return cfg, err
}

func runImport(cmd *cobra.Command, args []string) error {
	if _, err := openStore(); err != nil {
		return err
	}
	defer db.Close()

	path := args[0]
	records, err := services.ParseSourceFile(path)
	if err != nil {
		return err
	}
	log.Printf("[IMPORT] parsed %d records from %s", len(records), path)

	// The bar total comes from the reconciled batch, not the raw record
	// count: placeholders add entities and rejections remove them.
	bar := progressbar.NewOptions(len(records),
		progressbar.OptionSetDescription("importing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
	)

	result, err := services.ImportBatch(db.DB, records, services.ImportOptions{
		SourceFile: path,
		DryRun:     dryRun,
		Progress: func(done, total int) {
			bar.ChangeMax(total)
			_ = bar.Set(done)
		},
	})
	if err != nil {
		return err
	}

	fmt.Println()
	printReconcileReport(result.Report)
	if len(result.Rejections) > 0 {
		fmt.Printf("rejected records: %d (see log for code/name/source index)\n", len(result.Rejections))
	}
	return nil
}

func runMerge(cmd *cobra.Command, args []string) error {
	merged, report, err := services.MergeSourceFiles(args[0], args[1:]...)
	if err != nil {
		return err
	}

	fmt.Printf("merged %d entities, %d added from supplements, %d baseline conflicts kept\n",
		merged.Len(), report.TotalAdded(), report.Conflicts)
	for _, level := range []psgc.Level{psgc.LevelRegion, psgc.LevelProvince, psgc.LevelCity, psgc.LevelMunicipality, psgc.LevelBarangay} {
		if n := report.AddedByLevel[level]; n > 0 {
			fmt.Printf("  %-14s +%d\n", level, n)
		}
	}

	if !persist {
		return nil
	}
	if _, err := openStore(); err != nil {
		return err
	}
	defer db.Close()
	return services.PersistMergedBatch(db.DB, merged)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ref, err := services.LoadReference(cfg.StandardsPath)
	if err != nil {
		return err
	}

	findings, err := services.ValidateStore(db.DB, ref)
	if err != nil {
		return err
	}

	for _, f := range findings {
		fmt.Printf("%-14s %-17s expected %d, actual %d (delta %+d)\n",
			f.Level, f.Verdict, f.Expected, f.Actual, f.Delta)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	if _, err := openStore(); err != nil {
		return err
	}
	defer db.Close()

	counts, err := services.CountsByLevel(db.DB)
	if err != nil {
		return err
	}

	for _, level := range []psgc.Level{psgc.LevelRegion, psgc.LevelProvince, psgc.LevelCity, psgc.LevelMunicipality, psgc.LevelBarangay} {
		fmt.Printf("%-14s %d\n", level, counts[level])
	}
	return nil
}

func printReconcileReport(report *psgc.ReconcileReport) {
	fmt.Printf("created %d, synthesized %d, duplicates %d, rejected %d\n",
		report.TotalCreated(), report.TotalSynthesized(), report.TotalDuplicates(), report.Rejected)
	for _, level := range []psgc.Level{psgc.LevelRegion, psgc.LevelProvince, psgc.LevelCity, psgc.LevelMunicipality, psgc.LevelBarangay} {
		if report.Created[level]+report.Synthesized[level]+report.Duplicates[level] > 0 {
			fmt.Printf("  %-14s created %d, synthesized %d, duplicates %d\n",
				level, report.Created[level], report.Synthesized[level], report.Duplicates[level])
		}
	}
}
