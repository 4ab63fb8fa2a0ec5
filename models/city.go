package models

import "time"

// City represents a city (PSGC XXYYZZ000 with a city classification).
// CityClass distinguishes HUC/ICC/CC per the PSA city taxonomy.
type City struct {
	Code      string    `gorm:"size:9;primarykey" json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"size:100;not null" json:"name"`
	CityClass   string `gorm:"size:10" json:"city_class"`
	IncomeClass string `gorm:"size:20" json:"income_class"`
	IsCapital   bool   `json:"is_capital"`

	ProvinceCode string   `gorm:"size:9;not null;index" json:"province_code"`
	Province     Province `gorm:"foreignKey:ProvinceCode;references:Code" json:"province,omitempty"`
	RegionCode   string   `gorm:"size:9;not null;index" json:"region_code"`

	// Relationships
	Barangays []Barangay `gorm:"foreignKey:CityCode;references:Code" json:"barangays,omitempty"`
}

// TableName specifies the table name
func (City) TableName() string {
	return "cities"
}
