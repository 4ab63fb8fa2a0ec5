package services

import (
	"strings"

	"psgc_api_go/models"
	"psgc_api_go/psgc"

	"gorm.io/gorm"
)

// DefaultSearchLimit bounds search responses when the client does not
// ask for a specific limit
const DefaultSearchLimit = 50

// GetRegions returns all regions ordered by code
func GetRegions(db *gorm.DB) ([]models.Region, error) {
	var regions []models.Region
	err := db.Order("code").Find(&regions).Error
	return regions, err
}

// GetRegionByCode returns one region or gorm.ErrRecordNotFound
func GetRegionByCode(db *gorm.DB, code string) (*models.Region, error) {
	var region models.Region
	if err := db.First(&region, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &region, nil
}

// GetProvinces returns all provinces ordered by code
func GetProvinces(db *gorm.DB) ([]models.Province, error) {
	var provinces []models.Province
	err := db.Order("code").Find(&provinces).Error
	return provinces, err
}

// GetProvinceByCode returns one province or gorm.ErrRecordNotFound
func GetProvinceByCode(db *gorm.DB, code string) (*models.Province, error) {
	var province models.Province
	if err := db.First(&province, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &province, nil
}

// GetProvincesByRegion returns the provinces under a region
func GetProvincesByRegion(db *gorm.DB, regionCode string) ([]models.Province, error) {
	var provinces []models.Province
	err := db.Where("region_code = ?", regionCode).Order("code").Find(&provinces).Error
	return provinces, err
}

// GetCities returns all cities ordered by code
func GetCities(db *gorm.DB) ([]models.City, error) {
	var cities []models.City
	err := db.Order("code").Find(&cities).Error
	return cities, err
}

// GetCityByCode returns one city or gorm.ErrRecordNotFound
func GetCityByCode(db *gorm.DB, code string) (*models.City, error) {
	var city models.City
	if err := db.First(&city, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &city, nil
}

// GetCitiesByProvince returns the cities under a province
func GetCitiesByProvince(db *gorm.DB, provinceCode string) ([]models.City, error) {
	var cities []models.City
	err := db.Where("province_code = ?", provinceCode).Order("code").Find(&cities).Error
	return cities, err
}

// GetCitiesByRegion returns the cities under a region
func GetCitiesByRegion(db *gorm.DB, regionCode string) ([]models.City, error) {
	var cities []models.City
	err := db.Where("region_code = ?", regionCode).Order("code").Find(&cities).Error
	return cities, err
}

// GetMunicipalities returns all municipalities ordered by code
func GetMunicipalities(db *gorm.DB) ([]models.Municipality, error) {
	var municipalities []models.Municipality
	err := db.Order("code").Find(&municipalities).Error
	return municipalities, err
}

// GetMunicipalityByCode returns one municipality or gorm.ErrRecordNotFound
func GetMunicipalityByCode(db *gorm.DB, code string) (*models.Municipality, error) {
	var municipality models.Municipality
	if err := db.First(&municipality, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &municipality, nil
}

// GetMunicipalitiesByProvince returns the municipalities under a province
func GetMunicipalitiesByProvince(db *gorm.DB, provinceCode string) ([]models.Municipality, error) {
	var municipalities []models.Municipality
	err := db.Where("province_code = ?", provinceCode).Order("code").Find(&municipalities).Error
	return municipalities, err
}

// GetMunicipalitiesByRegion returns the municipalities under a region
func GetMunicipalitiesByRegion(db *gorm.DB, regionCode string) ([]models.Municipality, error) {
	var municipalities []models.Municipality
	err := db.Where("region_code = ?", regionCode).Order("code").Find(&municipalities).Error
	return municipalities, err
}

// GetBarangays returns all barangays ordered by code
func GetBarangays(db *gorm.DB) ([]models.Barangay, error) {
	var barangays []models.Barangay
	err := db.Order("code").Find(&barangays).Error
	return barangays, err
}

// GetBarangayByCode returns one barangay or gorm.ErrRecordNotFound
func GetBarangayByCode(db *gorm.DB, code string) (*models.Barangay, error) {
	var barangay models.Barangay
	if err := db.First(&barangay, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &barangay, nil
}

// GetBarangaysByCity returns the barangays under a city
func GetBarangaysByCity(db *gorm.DB, cityCode string) ([]models.Barangay, error) {
	var barangays []models.Barangay
	err := db.Where("city_code = ?", cityCode).Order("code").Find(&barangays).Error
	return barangays, err
}

// GetBarangaysByMunicipality returns the barangays under a municipality
func GetBarangaysByMunicipality(db *gorm.DB, municipalityCode string) ([]models.Barangay, error) {
	var barangays []models.Barangay
	err := db.Where("municipality_code = ?", municipalityCode).Order("code").Find(&barangays).Error
	return barangays, err
}

// GetBarangaysByProvince returns the barangays under a province
func GetBarangaysByProvince(db *gorm.DB, provinceCode string) ([]models.Barangay, error) {
	var barangays []models.Barangay
	err := db.Where("province_code = ?", provinceCode).Order("code").Find(&barangays).Error
	return barangays, err
}

// GetBarangaysByRegion returns the barangays under a region
func GetBarangaysByRegion(db *gorm.DB, regionCode string) ([]models.Barangay, error) {
	var barangays []models.Barangay
	err := db.Where("region_code = ?", regionCode).Order("code").Find(&barangays).Error
	return barangays, err
}

// SearchResult is one hit of a free-text name search
type SearchResult struct {
	Code  string     `json:"code"`
	Name  string     `json:"name"`
	Level psgc.Level `json:"level"`
}

// SearchByName performs a case-insensitive substring match on entity
// names, optionally restricted to one level. Plain substring matching,
// no relevance ranking.
func SearchByName(db *gorm.DB, query string, level psgc.Level, limit int) ([]SearchResult, error) {
	if limit <= 0 || limit > 1000 {
		limit = DefaultSearchLimit
	}
	pattern := "%" + strings.ToLower(query) + "%"

	searches := []struct {
		level psgc.Level
		table string
	}{
		{psgc.LevelRegion, "regions"},
		{psgc.LevelProvince, "provinces"},
		{psgc.LevelCity, "cities"},
		{psgc.LevelMunicipality, "municipalities"},
		{psgc.LevelBarangay, "barangays"},
	}

	var results []SearchResult
	for _, search := range searches {
		if level != "" && level != search.level {
			continue
		}
		if len(results) >= limit {
			break
		}

		var rows []SearchResult
		err := db.Table(search.table).
			Select("code, name").
			Where("lower(name) LIKE ?", pattern).
			Order("code").
			Limit(limit - len(results)).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].Level = search.level
		}
		results = append(results, rows...)
	}

	return results, nil
}

// CountsByLevel returns per-level entity counts from the store
func CountsByLevel(db *gorm.DB) (map[psgc.Level]int, error) {
	counts := make(map[psgc.Level]int)

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
		var count int64
		if err := db.Model(table.model).Count(&count).Error; err != nil {
			return nil, err
		}
		counts[table.level] = int(count)
	}
	return counts, nil
}
