package handlers

import (
	"psgc_api_go/db"
	"psgc_api_go/services"

	"github.com/labstack/echo/v4"
)

// GetRegionsHandler returns all regions
// GET /api/regions
func GetRegionsHandler(c echo.Context) error {
	regions, err := services.GetRegions(db.DB)
	if err != nil {
		return internalError(c, err)
	}
	return respondList(c, regions, len(regions))
}

// GetRegionHandler returns one region by code
// GET /api/regions/:code
func GetRegionHandler(c echo.Context) error {
	code, ok := pathCode(c)
	if !ok {
		return nil
	}

	region, err := services.GetRegionByCode(db.DB, code)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "region", code)
		}
		return internalError(c, err)
	}
	return respondList(c, region, 1)
}

// GetRegionProvincesHandler lists the provinces of a region
// GET /api/regions/:code/provinces
func GetRegionProvincesHandler(c echo.Context) error {
	region, ok := resolveRegion(c)
	if !ok {
		return nil
	}

	provinces, err := services.GetProvincesByRegion(db.DB, region.Code)
	if err != nil {
		return internalError(c, err)
	}
	return respondChildren(c, provinces, len(provinces), Ancestor(*region))
}

// GetRegionCitiesHandler lists the cities of a region
// GET /api/regions/:code/cities
func GetRegionCitiesHandler(c echo.Context) error {
	region, ok := resolveRegion(c)
	if !ok {
		return nil
	}

	cities, err := services.GetCitiesByRegion(db.DB, region.Code)
	if err != nil {
		return internalError(c, err)
	}
	return respondChildren(c, cities, len(cities), Ancestor(*region))
}

// GetRegionMunicipalitiesHandler lists the municipalities of a region
// GET /api/regions/:code/municipalities
func GetRegionMunicipalitiesHandler(c echo.Context) error {
	region, ok := resolveRegion(c)
	if !ok {
		return nil
	}

	municipalities, err := services.GetMunicipalitiesByRegion(db.DB, region.Code)
	if err != nil {
		return internalError(c, err)
	}
	return respondChildren(c, municipalities, len(municipalities), Ancestor(*region))
}

// GetRegionBarangaysHandler lists the barangays of a region
// GET /api/regions/:code/barangays
func GetRegionBarangaysHandler(c echo.Context) error {
	region, ok := resolveRegion(c)
	if !ok {
		return nil
	}

	barangays, err := services.GetBarangaysByRegion(db.DB, region.Code)
	if err != nil {
		return internalError(c, err)
	}
	return respondChildren(c, barangays, len(barangays), Ancestor(*region))
}

// resolveRegion loads the region named by :code. On failure the error
// response has already been written and the second return is false.
func resolveRegion(c echo.Context) (*ancestorRecord, bool) {
	code, ok := pathCode(c)
	if !ok {
		return nil, false
	}

	region, err := services.GetRegionByCode(db.DB, code)
	if err != nil {
		if isNotFound(err) {
			_ = notFound(c, "region", code)
		} else {
			_ = internalError(c, err)
		}
		return nil, false
	}
	return &ancestorRecord{Code: region.Code, Name: region.Name}, true
}

// ancestorRecord is the minimal parent projection shared by the
// children handlers
type ancestorRecord struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
