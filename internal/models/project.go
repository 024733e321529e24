// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectStatus defines the lifecycle state of a portfolio project.
type ProjectStatus string

const (
	// ProjectStatusPlanned indicates a project that has not started.
	ProjectStatusPlanned ProjectStatus = "planned"
	// ProjectStatusInProgress indicates a project under active work.
	ProjectStatusInProgress ProjectStatus = "in_progress"
	// ProjectStatusCompleted indicates a finished project.
	ProjectStatusCompleted ProjectStatus = "completed"
	// ProjectStatusArchived indicates a project hidden from the main listing.
	ProjectStatusArchived ProjectStatus = "archived"
)

// StringList is a string slice stored as a JSON array column, portable
// across PostgreSQL and SQLite.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Project represents a portfolio project. The slug identifies the project in
// public URLs and must be globally unique; the service layer enforces this
// with an explicit existence check, the unique index is a backstop.
type Project struct {
	ID               string           `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string           `gorm:"size:200;not null" json:"title"`
	Slug             string           `gorm:"size:200;not null;uniqueIndex" json:"slug"`
	ShortDescription string           `gorm:"type:text;not null" json:"short_description"`
	FullDescription  string           `gorm:"type:text;not null" json:"full_description"`
	Role             *string          `gorm:"size:200" json:"role"`
	Architecture     *string          `gorm:"type:text" json:"architecture"`
	TechStack        StringList       `gorm:"type:text" json:"tech_stack"`
	GithubURL        *string          `gorm:"size:500" json:"github_url"`
	LiveURL          *string          `gorm:"size:500" json:"live_url"`
	FeaturedImage    *string          `gorm:"size:500" json:"featured_image"`
	IsFeatured       bool             `gorm:"not null;default:false" json:"is_featured"`
	Status           ProjectStatus    `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	Sections         []ProjectSection `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project_sections,omitempty"`
	Images           []ProjectImage   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project_images,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for GORM.
func (Project) TableName() string {
	return "projects"
}

// ProjectSection is an ordered content block belonging to one project.
// OrderIndex defines display order ascending; NULL sorts as zero.
type ProjectSection struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   string    `gorm:"type:uuid;not null;index" json:"project_id"`
	SectionType string    `gorm:"size:50;not null;default:'text'" json:"section_type"`
	Title       *string   `gorm:"size:200" json:"title"`
	Content     *string   `gorm:"type:text" json:"content"`
	OrderIndex  *int      `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (ProjectSection) TableName() string {
	return "project_sections"
}

// ProjectImage is an ordered gallery image belonging to one project.
type ProjectImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProjectID  string    `gorm:"type:uuid;not null;index" json:"project_id"`
	ImageURL   string    `gorm:"size:500;not null" json:"image_url"`
	Caption    *string   `gorm:"size:500" json:"caption"`
	OrderIndex *int      `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (ProjectImage) TableName() string {
	return "project_images"
}
