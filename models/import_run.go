package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImportRun records one execution of the import pipeline so operators
// can trace which file produced which records
type ImportRun struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SourceFile string `gorm:"size:255;not null" json:"source_file"`
	DryRun     bool   `json:"dry_run"`

	Created     int `json:"created"`
	Synthesized int `json:"synthesized"`
	Duplicates  int `json:"duplicates"`
	Rejected    int `json:"rejected"`

	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}

// BeforeCreate hook to generate UUID
func (r *ImportRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (ImportRun) TableName() string {
	return "import_runs"
}
