package handlers

import (
	"psgc_api_go/db"
	"psgc_api_go/services"

	"github.com/labstack/echo/v4"
)

// GetBarangaysHandler returns all barangays
// GET /api/barangays
func GetBarangaysHandler(c echo.Context) error {
	barangays, err := services.GetBarangays(db.DB)
	if err != nil {
		return internalError(c, err)
	}
	return respondList(c, barangays, len(barangays))
}

// GetBarangayHandler returns one barangay by code
// GET /api/barangays/:code
func GetBarangayHandler(c echo.Context) error {
	code, ok := pathCode(c)
	if !ok {
		return nil
	}

	barangay, err := services.GetBarangayByCode(db.DB, code)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "barangay", code)
		}
		return internalError(c, err)
	}
	return respondList(c, barangay, 1)
}
