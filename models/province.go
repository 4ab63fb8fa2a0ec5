package models

import "time"

// Province represents a province within a region (PSGC XXYY00000)
type Province struct {
	Code      string    `gorm:"size:9;primarykey" json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name            string `gorm:"size:100;not null" json:"name"`
	IslandGroupCode string `gorm:"size:20" json:"island_group_code"`

	RegionCode string `gorm:"size:9;not null;index" json:"region_code"`
	Region     Region `gorm:"foreignKey:RegionCode;references:Code" json:"region,omitempty"`

	// Relationships
	Cities         []City         `gorm:"foreignKey:ProvinceCode;references:Code" json:"cities,omitempty"`
	Municipalities []Municipality `gorm:"foreignKey:ProvinceCode;references:Code" json:"municipalities,omitempty"`
}

// TableName specifies the table name
func (Province) TableName() string {
	return "provinces"
}
