package models

import "time"

// Display statuses for a comanda code. A free code shows RELEASED, a
// deactivated code shows CANCELLED, and a claimed code shows the status of
// the order backing it.
const (
	CodeStatusReleased  = "RELEASED"
	CodeStatusCancelled = "CANCELLED"
)

type ComandaCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	InUse     bool      `gorm:"not null;default:false" json:"in_use"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// CodeView is a ComandaCode plus its derived display status.
type CodeView struct {
	ComandaCode
	DisplayStatus string `json:"display_status"`
}
