package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is a portfolio entry. Client is a free text label, not a reference
// to the clients table.
type Project struct {
	ID          string     `json:"id" gorm:"column:id;type:varchar(64);primaryKey"`
	Title       string     `json:"title" gorm:"column:title;type:text;not null"`
	Client      string     `json:"client" gorm:"column:client;type:varchar(255);not null"`
	Year        string     `json:"year" gorm:"column:year;type:varchar(16);not null"`
	Category    string     `json:"category" gorm:"column:category;type:varchar(255);not null"`
	Description string     `json:"description" gorm:"column:description;type:text;not null"`
	Image       string     `json:"image" gorm:"column:image;type:text;not null;default:''"`
	Featured    bool       `json:"featured" gorm:"column:featured;not null;default:false"`
	VideoURL    string     `json:"videoUrl" gorm:"column:video_url;type:text;not null;default:''"`
	Date        *time.Time `json:"date" gorm:"column:date"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" gorm:"column:updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}

// ProjectCreate is the body of POST /admin/projects.
type ProjectCreate struct {
	Title       string     `json:"title" validate:"required"`
	Client      string     `json:"client" validate:"required"`
	Year        string     `json:"year" validate:"required"`
	Category    string     `json:"category" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Image       string     `json:"image"`
	Featured    bool       `json:"featured"`
	VideoURL    string     `json:"videoUrl"`
	Date        *time.Time `json:"date"`
}

// NewProject builds the stored document; the display date defaults to now.
func (c ProjectCreate) NewProject(now time.Time) Project {
	date := c.Date
	if date == nil {
		date = &now
	}
	return Project{
		Title:       c.Title,
		Client:      c.Client,
		Year:        c.Year,
		Category:    c.Category,
		Description: c.Description,
		Image:       c.Image,
		Featured:    c.Featured,
		VideoURL:    c.VideoURL,
		Date:        date,
	}
}

// ProjectPatch carries only the fields supplied by the caller.
type ProjectPatch struct {
	Title       *string `json:"title"`
	Client      *string `json:"client"`
	Year        *string `json:"year"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Featured    *bool   `json:"featured"`
	VideoURL    *string `json:"videoUrl"`
}

// Columns returns the column assignments for the present fields plus the
// refreshed mutation timestamp.
func (p ProjectPatch) Columns(now time.Time) map[string]any {
	cols := map[string]any{"updated_at": now}
	setString(cols, "title", p.Title)
	setString(cols, "client", p.Client)
	setString(cols, "year", p.Year)
	setString(cols, "category", p.Category)
	setString(cols, "description", p.Description)
	setString(cols, "image", p.Image)
	setString(cols, "video_url", p.VideoURL)
	if p.Featured != nil {
		cols["featured"] = *p.Featured
	}
	return cols
}

// PublicProject is the shape served on the public portfolio page.
type PublicProject struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Client      string     `json:"client"`
	Year        string     `json:"year"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Featured    bool       `json:"featured"`
	VideoURL    string     `json:"videoUrl"`
	Date        *time.Time `json:"date"`
}

func (p Project) Public() PublicProject {
	return PublicProject{
		ID:          p.ID,
		Title:       p.Title,
		Client:      p.Client,
		Year:        p.Year,
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		Featured:    p.Featured,
		VideoURL:    p.VideoURL,
		Date:        p.Date,
	}
}

func setString(cols map[string]any, column string, v *string) {
	if v != nil {
		cols[column] = *v
	}
}
