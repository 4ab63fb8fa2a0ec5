package models

import "time"

// Region represents a top-level administrative region (PSGC XX0000000)
type Region struct {
	Code      string    `gorm:"size:9;primarykey" json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name            string `gorm:"size:100;not null" json:"name"`
	IslandGroupCode string `gorm:"size:20" json:"island_group_code"`
	IslandGroupName string `gorm:"size:50" json:"island_group_name"`

	// Relationships
	Provinces []Province `gorm:"foreignKey:RegionCode;references:Code" json:"provinces,omitempty"`
}

// TableName specifies the table name
func (Region) TableName() string {
	return "regions"
}
