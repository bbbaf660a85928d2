package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/models"
)

// ProductFilter carries the catalog listing parameters.
type ProductFilter struct {
	Search     string
	CategoryID uint
	BrandID    uint
	MinPrice   int64
	MaxPrice   int64
	SortBy     string
	SortDesc   bool
}

type ProductStore interface {
	// FindActiveByID returns an active product with its discount loaded.
	FindActiveByID(id uint) (*models.Product, error)

	FindBySlug(slug string) (*models.Product, error)
	List(f ProductFilter) ([]models.Product, error)
	All() ([]models.Product, error)

	Create(p *models.Product) error
	Update(p *models.Product) error
	Delete(id uint) error
}

type gormProductStore struct {
	db *gorm.DB
}

func NewProductStore(db *gorm.DB) ProductStore {
	return &gormProductStore{db: db}
}

func (s *gormProductStore) FindActiveByID(id uint) (*models.Product, error) {
	var p models.Product
	err := s.db.Preload("Discount").
		Where("is_active = ?", true).
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *gormProductStore) FindBySlug(slug string) (*models.Product, error) {
	var p models.Product
	err := s.db.Preload("Discount").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var sortableColumns = map[string]bool{
	"created_at": true,
	"price":      true,
	"name":       true,
	"stock":      true,
}

func (s *gormProductStore) List(f ProductFilter) ([]models.Product, error) {
	query := s.db.Model(&models.Product{}).
		Preload("Discount").
		Where("is_active = ?", true)

	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("name ILIKE ? OR short_description ILIKE ? OR description ILIKE ?", like, like, like)
	}
	if f.CategoryID != 0 {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if f.BrandID != 0 {
		query = query.Where("brand_id = ?", f.BrandID)
	}
	if f.MinPrice > 0 {
		query = query.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		query = query.Where("price <= ?", f.MaxPrice)
	}

	sortBy := f.SortBy
	if !sortableColumns[sortBy] {
		sortBy = "created_at"
	}
	direction := "asc"
	if f.SortDesc {
		direction = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, strings.ToUpper(direction)))

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *gormProductStore) All() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Preload("Discount").Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *gormProductStore) Create(p *models.Product) error {
	return s.db.Create(p).Error
}

func (s *gormProductStore) Update(p *models.Product) error {
	return s.db.Save(p).Error
}

func (s *gormProductStore) Delete(id uint) error {
	res := s.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
