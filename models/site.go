package models

import "time"

// SiteSettings is a single-row table; the admin API reads and updates the
// first row only.
type SiteSettings struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	SiteName   string `gorm:"not null;size:155" json:"site_name"`
	Logo       string `json:"logo"`
	Phone      string `gorm:"size:20" json:"phone"`
	Email      string `json:"email"`
	FooterText string `json:"footer_text"`

	UpdatedAt time.Time `json:"updated_at"`
}

type BannerPosition string

const (
	BannerPositionSlider BannerPosition = "slider"
	BannerPositionSide   BannerPosition = "side"
	BannerPositionMiddle BannerPosition = "middle"
)

type Banner struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	Position BannerPosition `gorm:"type:VARCHAR(10);default:'slider'" json:"position"`
	ImageURL string         `gorm:"not null" json:"image_url"`
	LinkURL  string         `json:"link_url"`
	IsActive bool           `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
}

// Comment is a product review; only approved comments are publicly listed.
type Comment struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	ProductID uint     `gorm:"not null;index" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"-"`
	UserID    string   `gorm:"not null" json:"user_id"`
	User      *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Body     string `gorm:"not null" json:"body"`
	Approved bool   `gorm:"default:false;index" json:"approved"`

	CreatedAt time.Time `json:"created_at"`
}
