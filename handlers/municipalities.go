package handlers

import (
	"psgc_api_go/db"
	"psgc_api_go/services"

	"github.com/labstack/echo/v4"
)

// GetMunicipalitiesHandler returns all municipalities
// GET /api/municipalities
func GetMunicipalitiesHandler(c echo.Context) error {
	municipalities, err := services.GetMunicipalities(db.DB)
	if err != nil {
		return internalError(c, err)
	}
	return respondList(c, municipalities, len(municipalities))
}

// GetMunicipalityHandler returns one municipality by code
// GET /api/municipalities/:code
func GetMunicipalityHandler(c echo.Context) error {
	code, ok := pathCode(c)
	if !ok {
		return nil
	}

	municipality, err := services.GetMunicipalityByCode(db.DB, code)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "municipality", code)
		}
		return internalError(c, err)
	}
	return respondList(c, municipality, 1)
}

// GetMunicipalityBarangaysHandler lists the barangays of a municipality
// GET /api/municipalities/:code/barangays
func GetMunicipalityBarangaysHandler(c echo.Context) error {
	code, ok := pathCode(c)
	if !ok {
		return nil
	}

	municipality, err := services.GetMunicipalityByCode(db.DB, code)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "municipality", code)
		}
		return internalError(c, err)
	}

	barangays, err := services.GetBarangaysByMunicipality(db.DB, municipality.Code)
	if err != nil {
		return internalError(c, err)
	}
	return respondChildren(c, barangays, len(barangays), Ancestor{Code: municipality.Code, Name: municipality.Name})
}
