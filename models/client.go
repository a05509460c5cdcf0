package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is a logo shown on the public page. Order sorts ascending.
type Client struct {
	ID        string    `json:"id" gorm:"column:id;type:varchar(64);primaryKey"`
	Name      string    `json:"name" gorm:"column:name;type:varchar(255);not null"`
	Logo      string    `json:"logo" gorm:"column:logo;type:text;not null;default:''"`
	Website   string    `json:"website" gorm:"column:website;type:text;not null;default:''"`
	Order     int       `json:"order" gorm:"column:sort_order;not null;default:0"`
	Active    bool      `json:"active" gorm:"column:active;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = newID()
	}
	return nil
}

// ClientCreate is the body of POST /admin/clients. Active defaults to true
// when omitted.
type ClientCreate struct {
	Name    string `json:"name" validate:"required"`
	Logo    string `json:"logo"`
	Website string `json:"website"`
	Order   int    `json:"order"`
	Active  *bool  `json:"active"`
}

func (c ClientCreate) NewClient() Client {
	active := true
	if c.Active != nil {
		active = *c.Active
	}
	return Client{
		Name:    c.Name,
		Logo:    c.Logo,
		Website: c.Website,
		Order:   c.Order,
		Active:  active,
	}
}

type ClientPatch struct {
	Name    *string `json:"name"`
	Logo    *string `json:"logo"`
	Website *string `json:"website"`
	Order   *int    `json:"order"`
	Active  *bool   `json:"active"`
}

func (p ClientPatch) Columns(now time.Time) map[string]any {
	cols := map[string]any{"updated_at": now}
	setString(cols, "name", p.Name)
	setString(cols, "logo", p.Logo)
	setString(cols, "website", p.Website)
	if p.Order != nil {
		cols["sort_order"] = *p.Order
	}
	if p.Active != nil {
		cols["active"] = *p.Active
	}
	return cols
}

type PublicClient struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Logo    string `json:"logo"`
	Website string `json:"website"`
}

func (c Client) Public() PublicClient {
	return PublicClient{
		ID:      c.ID,
		Name:    c.Name,
		Logo:    c.Logo,
		Website: c.Website,
	}
}
