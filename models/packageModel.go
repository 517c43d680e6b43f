package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Package types control how a package is priced and ordered: selection
// packages charge a per-person tier price with menu selections, quantity
// packages sell priced items by count, fixed packages are flat priced.
const (
	PackageTypeSelection = "selection"
	PackageTypeQuantity  = "quantity"
	PackageTypeFixed     = "fixed"
)

type MenuPackage struct {
	ID           string            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Type         string            `gorm:"type:varchar(20)" json:"type"`
	ImageURL     string            `json:"imageUrl"`
	Badge        string            `json:"badge"`
	MinGuests    *int              `json:"minGuests"`
	Active       bool              `gorm:"default:true" json:"active"`
	DisplayOrder int               `json:"displayOrder"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	Tiers        []PackageTier     `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE" json:"tiers"`
	Categories   []PackageCategory `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE" json:"categories"`
	Items        []PackageItem     `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE" json:"items"`
	Upgrades     []PackageUpgrade  `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE" json:"upgrades"`
}

type PackageTier struct {
	ID             string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PackageID      string          `gorm:"index;type:varchar(36)" json:"packageId"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	PricePerPerson decimal.Decimal `gorm:"type:decimal(10,2)" json:"pricePerPerson"`
	MinGuests      *int            `json:"minGuests"`
	Active         bool            `gorm:"default:true" json:"active"`
	DisplayOrder   int             `json:"displayOrder"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type PackageCategory struct {
	ID            string                `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PackageID     string                `gorm:"index;type:varchar(36)" json:"packageId"`
	Name          string                `json:"name"`
	MaxSelections int                   `gorm:"default:1" json:"maxSelections"`
	Active        bool                  `gorm:"default:true" json:"active"`
	DisplayOrder  int                   `json:"displayOrder"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
	Items         []PackageCategoryItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"items"`
}

type PackageCategoryItem struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CategoryID   string    `gorm:"index;type:varchar(36)" json:"categoryId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Active       bool      `gorm:"default:true" json:"active"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type PackageItem struct {
	ID           string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PackageID    string          `gorm:"index;type:varchar(36)" json:"packageId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Unit         string          `json:"unit"`
	Active       bool            `gorm:"default:true" json:"active"`
	DisplayOrder int             `json:"displayOrder"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type PackageUpgrade struct {
	ID             string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PackageID      string          `gorm:"index;type:varchar(36)" json:"packageId"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	PricePerPerson decimal.Decimal `gorm:"type:decimal(10,2)" json:"pricePerPerson"`
	Active         bool            `gorm:"default:true" json:"active"`
	DisplayOrder   int             `json:"displayOrder"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (p *MenuPackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (t *PackageTier) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (c *PackageCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (i *PackageCategoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (i *PackageItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (u *PackageUpgrade) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
