package models

import "time"

// Municipality represents a municipality (PSGC XXYYZZ000 without a
// city classification)
type Municipality struct {
	Code      string    `gorm:"size:9;primarykey" json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"size:100;not null" json:"name"`
	IncomeClass string `gorm:"size:20" json:"income_class"`
	IsCapital   bool   `json:"is_capital"`

	ProvinceCode string   `gorm:"size:9;not null;index" json:"province_code"`
	Province     Province `gorm:"foreignKey:ProvinceCode;references:Code" json:"province,omitempty"`
	RegionCode   string   `gorm:"size:9;not null;index" json:"region_code"`

	// Relationships
	Barangays []Barangay `gorm:"foreignKey:MunicipalityCode;references:Code" json:"barangays,omitempty"`
}

// TableName specifies the table name
func (Municipality) TableName() string {
	return "municipalities"
}
