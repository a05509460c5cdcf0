package models

import (
	"time"

	"gorm.io/gorm"
)

// ContactMessage is a visitor submission from the contact form.
type ContactMessage struct {
	ID        string    `json:"id" gorm:"column:id;type:varchar(64);primaryKey"`
	Name      string    `json:"name" gorm:"column:name;type:varchar(255);not null"`
	Email     string    `json:"email" gorm:"column:email;type:varchar(255);not null"`
	Phone     string    `json:"phone" gorm:"column:phone;type:varchar(64);not null;default:''"`
	Subject   string    `json:"subject" gorm:"column:subject;type:text;not null"`
	Message   string    `json:"message" gorm:"column:message;type:text;not null"`
	Read      bool      `json:"read" gorm:"column:read;not null;default:false"`
	Replied   bool      `json:"replied" gorm:"column:replied;not null;default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (ContactMessage) TableName() string {
	return "messages"
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

// ContactMessageCreate is the body of POST /contact.
type ContactMessageCreate struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (c ContactMessageCreate) NewMessage() ContactMessage {
	return ContactMessage{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Subject: c.Subject,
		Message: c.Message,
	}
}

// MessagePatch only touches the read and replied flags.
type MessagePatch struct {
	Read    *bool `json:"read"`
	Replied *bool `json:"replied"`
}

func (p MessagePatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Read != nil {
		cols["read"] = *p.Read
	}
	if p.Replied != nil {
		cols["replied"] = *p.Replied
	}
	return cols
}

// MessageFilter narrows GET /admin/messages.
type MessageFilter struct {
	Read *bool
}
