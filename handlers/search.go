package handlers

import (
	"strconv"

	"psgc_api_go/db"
	"psgc_api_go/psgc"
	"psgc_api_go/services"

	"github.com/labstack/echo/v4"
)

// SearchHandler performs substring name search across all levels
// GET /api/search?q=manila&type=city&limit=10
func SearchHandler(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return badRequest(c, "q query parameter is required")
	}

	var level psgc.Level
	if typeParam := c.QueryParam("type"); typeParam != "" {
		switch psgc.Level(typeParam) {
		case psgc.LevelRegion, psgc.LevelProvince, psgc.LevelCity, psgc.LevelMunicipality, psgc.LevelBarangay:
			level = psgc.Level(typeParam)
		default:
			return badRequest(c, "unknown type "+typeParam)
		}
	}

	limit := 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			return badRequest(c, "limit must be a positive integer")
		}
		limit = parsed
	}

	results, err := services.SearchByName(db.DB, query, level, limit)
	if err != nil {
		return internalError(c, err)
	}
	return respondList(c, results, len(results))
}
