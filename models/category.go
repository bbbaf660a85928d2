package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Category struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ParentID  *uint      `json:"parent_id,omitempty"`
	Children  []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Name      string     `gorm:"not null;size:155" json:"name"`
	Slug      string     `gorm:"uniqueIndex;size:255" json:"slug"`
	Image     string     `json:"image"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	return nil
}

type Brand struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null;size:155" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:255" json:"slug"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (b *Brand) BeforeSave(tx *gorm.DB) error {
	if b.Slug == "" {
		b.Slug = slug.Make(b.Name)
	}
	return nil
}
