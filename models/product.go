package models

import (
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductStatusAvailable    ProductStatus = "available"
	ProductStatusComingSoon   ProductStatus = "soon"
	ProductStatusNotAvailable ProductStatus = "not_available"
)

type Product struct {
	ID               uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID       uint   `gorm:"not null;index" json:"category_id"`
	BrandID          *uint  `json:"brand_id,omitempty"`
	Name             string `gorm:"not null" json:"name"`
	Slug             string `gorm:"uniqueIndex;size:255" json:"slug"`
	Image            string `json:"image"`
	ShortDescription string `gorm:"size:155" json:"short_description"`
	Description      string `json:"description"`

	// Price is in the smallest currency unit.
	Price int64 `gorm:"not null;default:0;check:price >= 0" json:"price"`
	Stock int   `gorm:"not null;default:0" json:"stock"`

	Status   ProductStatus `gorm:"type:VARCHAR(20);default:'available'" json:"status"`
	IsActive bool          `gorm:"default:true" json:"is_active"`

	DiscountID *uint     `json:"discount_id,omitempty"`
	Discount   *Discount `gorm:"foreignKey:DiscountID" json:"discount,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	return nil
}

// FinalPriceAt is the unit price after discount, or the base price when no
// valid discount is attached.
func (p *Product) FinalPriceAt(now time.Time) int64 {
	if p.Discount == nil {
		return p.Price
	}
	return p.Discount.ApplyAt(p.Price, now)
}

func (p *Product) HasValidDiscountAt(now time.Time) bool {
	return p.Discount != nil && p.Discount.IsValidAt(now)
}

// Discount is a percentage off, optionally bounded by a validity window.
// A missing bound leaves that side open.
type Discount struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Value      decimal.Decimal `gorm:"type:decimal(5,2)" json:"value"` // percent, 0-100
	IsActive   bool            `gorm:"default:true" json:"is_active"`
	StartDate  *time.Time      `json:"start_date,omitempty"`
	ExpireDate *time.Time      `json:"expire_date,omitempty"`
}

func (d *Discount) IsValidAt(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartDate != nil && d.StartDate.After(now) {
		return false
	}
	if d.ExpireDate != nil && d.ExpireDate.Before(now) {
		return false
	}
	return true
}

// ApplyAt returns the discounted price, floored to the smallest currency unit
// and never below zero. An invalid discount returns the price unchanged.
func (d *Discount) ApplyAt(price int64, now time.Time) int64 {
	if !d.IsValidAt(now) {
		return price
	}
	factor := decimal.NewFromInt(100).Sub(d.Value).Div(decimal.NewFromInt(100))
	final := decimal.NewFromInt(price).Mul(factor).Floor().IntPart()
	if final < 0 {
		return 0
	}
	return final
}
