package models

import "time"

// Barangay represents a barangay (PSGC XXYYZZBBB, BBB != 000).
// Exactly one of CityCode or MunicipalityCode is set once
// reconciliation completes.
type Barangay struct {
	Code      string    `gorm:"size:9;primarykey" json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name       string `gorm:"size:100;not null" json:"name"`
	UrbanRural string `gorm:"size:10" json:"urban_rural"`

	CityCode         *string `gorm:"size:9;index" json:"city_code,omitempty"`
	MunicipalityCode *string `gorm:"size:9;index" json:"municipality_code,omitempty"`
	ProvinceCode     string  `gorm:"size:9;not null;index" json:"province_code"`
	RegionCode       string  `gorm:"size:9;not null;index" json:"region_code"`
}

// TableName specifies the table name
func (Barangay) TableName() string {
	return "barangays"
}
