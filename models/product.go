package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Category        string          `gorm:"type:varchar(100)" json:"category,omitempty"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	ImageURL        string          `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Active          bool            `gorm:"not null;default:true" json:"active"`
	TracksStock     bool            `gorm:"not null;default:true" json:"tracks_stock"`
	Stock           int             `gorm:"not null;default:0" json:"stock"`
	AllowedAddonIDs []uint          `gorm:"serializer:json;type:text" json:"allowed_addon_ids"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
}

// AddonAllowed reports whether an addon may be applied to this product.
// An empty eligibility set means every addon is allowed.
func (p *Product) AddonAllowed(addonID uint) bool {
	if len(p.AllowedAddonIDs) == 0 {
		return true
	}
	for _, id := range p.AllowedAddonIDs {
		if id == addonID {
			return true
		}
	}
	return false
}

func (p Product) Clone() Product {
	out := p
	out.AllowedAddonIDs = append([]uint(nil), p.AllowedAddonIDs...)
	return out
}

type Addon struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Active    bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
}
