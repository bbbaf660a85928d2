package models

import "time"

type User struct {
	ID       string `gorm:"primaryKey;size:40" json:"id"`
	Email    string `gorm:"unique;not null" json:"email"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
	Provider string `json:"provider"`

	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	Orders    []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Address rows are referenced by orders, so they are never cascade-deleted
// with the user.
type Address struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`

	FullName    string `gorm:"not null;size:155" json:"full_name"`
	Phone       string `gorm:"size:20" json:"phone"`
	Country     string `gorm:"size:60;default:'Iran'" json:"country"`
	State       string `gorm:"size:60" json:"state"`
	City        string `gorm:"size:60" json:"city"`
	PostalCode  string `gorm:"size:20" json:"postal_code"`
	FullAddress string `json:"full_address"`
	IsDefault   bool   `gorm:"default:true" json:"is_default"`

	CreatedAt time.Time `json:"created_at"`
}
