package handlers

import (
	"psgc_api_go/db"
	"psgc_api_go/services"

	"github.com/labstack/echo/v4"
)

// GetCitiesHandler returns all cities
// GET /api/cities
func GetCitiesHandler(c echo.Context) error {
	cities, err := services.GetCities(db.DB)
	if err != nil {
		return internalError(c, err)
	}
	return respondList(c, cities, len(cities))
}

// GetCityHandler returns one city by code
// GET /api/cities/:code
func GetCityHandler(c echo.Context) error {
	code, ok := pathCode(c)
	if !ok {
		return nil
	}

	city, err := services.GetCityByCode(db.DB, code)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "city", code)
		}
		return internalError(c, err)
	}
	return respondList(c, city, 1)
}

// GetCityBarangaysHandler lists the barangays of a city
// GET /api/cities/:code/barangays
func GetCityBarangaysHandler(c echo.Context) error {
	code, ok := pathCode(c)
	if !ok {
		return nil
	}

	city, err := services.GetCityByCode(db.DB, code)
	if err != nil {
		if isNotFound(err) {
			return notFound(c, "city", code)
		}
		return internalError(c, err)
	}

	barangays, err := services.GetBarangaysByCity(db.DB, city.Code)
	if err != nil {
		return internalError(c, err)
	}
	return respondChildren(c, barangays, len(barangays), Ancestor{Code: city.Code, Name: city.Name})
}
