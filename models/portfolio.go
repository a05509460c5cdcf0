package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SocialLinks struct {
	Instagram string `json:"instagram" yaml:"instagram"`
	LinkedIn  string `json:"linkedin" yaml:"linkedin"`
	YouTube   string `json:"youtube" yaml:"youtube"`
	WhatsApp  string `json:"whatsapp" yaml:"whatsapp"`
}

type PersonalInfo struct {
	Name       string      `json:"name" yaml:"name" validate:"required"`
	Role       string      `json:"role" yaml:"role" validate:"required"`
	Location   string      `json:"location" yaml:"location" validate:"required"`
	Email      string      `json:"email" yaml:"email" validate:"required"`
	Phone      string      `json:"phone" yaml:"phone" validate:"required"`
	Bio        string      `json:"bio" yaml:"bio" validate:"required"`
	HeroImage  string      `json:"heroImage" yaml:"heroImage"`
	AboutImage string      `json:"aboutImage" yaml:"aboutImage"`
	Social     SocialLinks `json:"social" yaml:"social"`
}

type DemoReel struct {
	Title       string `json:"title" yaml:"title" validate:"required"`
	Description string `json:"description" yaml:"description" validate:"required"`
	VideoURL    string `json:"videoUrl" yaml:"videoUrl"`
	Thumbnail   string `json:"thumbnail" yaml:"thumbnail"`
}

type Service struct {
	Title       string `json:"title" yaml:"title" validate:"required"`
	Description string `json:"description" yaml:"description" validate:"required"`
	Icon        string `json:"icon" yaml:"icon" validate:"required"`
}

// Portfolio is a singleton document: readers take the first row.
type Portfolio struct {
	ID        string                           `json:"id" gorm:"column:id;type:varchar(64);primaryKey"`
	Personal  datatypes.JSONType[PersonalInfo] `json:"personal" gorm:"column:personal"`
	DemoReel  datatypes.JSONType[DemoReel]     `json:"demoReel" gorm:"column:demo_reel"`
	Services  datatypes.JSONSlice[Service]     `json:"services" gorm:"column:services"`
	CreatedAt time.Time                        `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time                        `json:"updatedAt" gorm:"column:updated_at"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}

func (p *Portfolio) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Services == nil {
		p.Services = datatypes.JSONSlice[Service]{}
	}
	return nil
}

// PortfolioPatch replaces whole sections; nil sections are left untouched.
type PortfolioPatch struct {
	Personal *PersonalInfo `json:"personal" validate:"omitempty"`
	DemoReel *DemoReel     `json:"demoReel" validate:"omitempty"`
	Services *[]Service    `json:"services" validate:"omitempty,dive"`
}

func (p PortfolioPatch) Columns(now time.Time) map[string]any {
	cols := map[string]any{"updated_at": now}
	if p.Personal != nil {
		cols["personal"] = datatypes.NewJSONType(*p.Personal)
	}
	if p.DemoReel != nil {
		cols["demo_reel"] = datatypes.NewJSONType(*p.DemoReel)
	}
	if p.Services != nil {
		cols["services"] = datatypes.JSONSlice[Service](*p.Services)
	}
	return cols
}

// NewPortfolio builds the document inserted when an update finds nothing to
// patch. Sections the patch leaves out come from the default profile.
func (p PortfolioPatch) NewPortfolio() Portfolio {
	doc := DefaultPortfolio()
	if p.Personal != nil {
		doc.Personal = datatypes.NewJSONType(*p.Personal)
	}
	if p.DemoReel != nil {
		doc.DemoReel = datatypes.NewJSONType(*p.DemoReel)
	}
	if p.Services != nil {
		doc.Services = datatypes.JSONSlice[Service](*p.Services)
	}
	return doc
}

// PublicPortfolio is the aggregate returned by GET /portfolio.
type PublicPortfolio struct {
	Personal       PersonalInfo    `json:"personal"`
	DemoReel       DemoReel        `json:"demoReel"`
	Services       []Service       `json:"services"`
	FeaturedWorks  []PublicProject `json:"featuredWorks"`
	RecentProjects []PublicProject `json:"recentProjects"`
	Clients        []PublicClient  `json:"clients"`
}
