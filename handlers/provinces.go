package handlers

import (
	"psgc_api_go/db"
	"psgc_api_go/services"

	"github.com/labstack/echo/v4"
)

// GetProvincesHandler returns all provinces
// GET /api/provinces
func GetProvincesHandler(c echo.Context) error {
	provinces, err := services.GetProvinces(db.DB)
	if err != nil {
		return internalError(c, err)
	}
	return respondList(c, provinces, len(provinces))
}

// GetProvinceHandler returns one province by code
// GET /api/provinces/:code
func GetProvinceHandler(c echo.Context) error {
	code, ok := pathCode(c)
	if !ok {
		return nil
	}

	province, err := services.GetProvinceByCode(db.DB, code)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "province", code)
		}
		return internalError(c, err)
	}
	return respondList(c, province, 1)
}

// GetProvinceCitiesHandler lists the cities of a province
// GET /api/provinces/:code/cities
func GetProvinceCitiesHandler(c echo.Context) error {
	province, ok := resolveProvince(c)
	if !ok {
		return nil
	}

	cities, err := services.GetCitiesByProvince(db.DB, province.Code)
	if err != nil {
		return internalError(c, err)
	}
	return respondChildren(c, cities, len(cities), Ancestor(*province))
}

// GetProvinceMunicipalitiesHandler lists the municipalities of a province
// GET /api/provinces/:code/municipalities
func GetProvinceMunicipalitiesHandler(c echo.Context) error {
	province, ok := resolveProvince(c)
	if !ok {
		return nil
	}

	municipalities, err := services.GetMunicipalitiesByProvince(db.DB, province.Code)
	if err != nil {
		return internalError(c, err)
	}
	return respondChildren(c, municipalities, len(municipalities), Ancestor(*province))
}

// GetProvinceBarangaysHandler lists the barangays of a province
// GET /api/provinces/:code/barangays
func GetProvinceBarangaysHandler(c echo.Context) error {
	province, ok := resolveProvince(c)
	if !ok {
		return nil
	}

	barangays, err := services.GetBarangaysByProvince(db.DB, province.Code)
	if err != nil {
		return internalError(c, err)
	}
	return respondChildren(c, barangays, len(barangays), Ancestor(*province))
}

func resolveProvince(c echo.Context) (*ancestorRecord, bool) {
	code, ok := pathCode(c)
	if !ok {
		return nil, false
	}

	province, err := services.GetProvinceByCode(db.DB, code)
	if err != nil {
		if isNotFound(err) {
			_ = notFound(c, "province", code)
		} else {
			_ = internalError(c, err)
		}
		return nil, false
	}
	return &ancestorRecord{Code: province.Code, Name: province.Name}, true
}
