package models

import "github.com/shopspring/decimal"

// OrderItem snapshots the product name and price at the moment it is placed,
// so later catalog edits never change a historical ticket. Snapshot fields
// are immutable; quantity, discount and addons change only by replacing the
// whole item through the update operation.
type OrderItem struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	OrderID     uint             `gorm:"not null;index" json:"order_id"`
	ProductID   uint             `gorm:"not null" json:"product_id"`
	ProductName string           `gorm:"type:varchar(255);not null" json:"product_name"`
	UnitPrice   decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity    int              `gorm:"not null" json:"quantity"`
	Discount    decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"discount"`
	Subtotal    decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Notes       string           `gorm:"type:text" json:"notes,omitempty"`
	Addons      []OrderItemAddon `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"addons"`
}

func (i OrderItem) Clone() OrderItem {
	out := i
	out.Addons = append([]OrderItemAddon(nil), i.Addons...)
	return out
}

// OrderItemAddon is one addon application on a line item, with its own
// name/price snapshot.
type OrderItemAddon struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ItemID    uint            `gorm:"not null;index" json:"item_id"`
	AddonID   uint            `gorm:"not null" json:"addon_id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}
