package handlers

import (
	"psgc_api_go/config"
	"psgc_api_go/db"
	"psgc_api_go/services"

	"github.com/labstack/echo/v4"
)

// GetStandardsReportHandler compares the store's per-level counts
// against the configured PSA reference totals
// GET /api/standards
func GetStandardsReportHandler(c echo.Context) error {
	cfg, _ := c.Get("config").(*config.Config)
	if cfg == nil {
		cfg = config.Load()
	}

	ref, err := services.LoadReference(cfg.StandardsPath)
	if err != nil {
		return internalError(c, err)
	}

	findings, err := services.ValidateStore(db.DB, ref)
	if err != nil {
		return internalError(c, err)
	}
	return respondList(c, findings, len(findings))
}
