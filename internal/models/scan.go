package models

import "time"

// DeviceType is the classification bucket for a visiting client.
type DeviceType string

const (
	DeviceIOS     DeviceType = "iOS"
	DeviceAndroid DeviceType = "Android"
	DeviceDesktop DeviceType = "Desktop"
	DeviceUnknown DeviceType = "Unknown"
)

// DeviceTypes lists every category in a stable order, used to zero-fill
// the device breakdown.
var DeviceTypes = []DeviceType{DeviceIOS, DeviceAndroid, DeviceDesktop, DeviceUnknown}

// Scan is one recorded visit to a card's public link. Rows are append-only
// and removed only when the owning card is deleted.
type Scan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CardID     string     `gorm:"type:uuid;not null;index" json:"card_id"`
	ScannedAt  time.Time  `gorm:"not null;index" json:"scanned_at"`
	UserAgent  string     `gorm:"size:500" json:"user_agent"`
	DeviceType DeviceType `gorm:"size:50" json:"device_type"`

	// The database-level constraint backstops the existence check in the
	// recorder: a scan racing a card delete fails the insert instead of
	// leaving an orphan row that would inflate the totals forever.
	Card Card `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"-"`
}
