package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MenuCategory struct {
	ID           string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string     `json:"name" binding:"required"`
	DisplayOrder int        `json:"displayOrder"`
	Active       bool       `gorm:"default:true" json:"active"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Items        []MenuItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type MenuItem struct {
	ID           string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CategoryID   string          `gorm:"index;type:varchar(36)" json:"categoryId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	PricingType  string          `gorm:"type:varchar(20);default:fixed" json:"pricingType"`
	ServesCount  *int            `json:"servesCount"`
	ImageURL     string          `json:"imageUrl"`
	DietaryTags  datatypes.JSON  `json:"dietaryTags"`
	Active       bool            `gorm:"default:true" json:"active"`
	DisplayOrder int             `json:"displayOrder"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (c *MenuCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (i *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
