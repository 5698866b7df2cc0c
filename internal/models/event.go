package models

import "time"

// Event types recorded in a user's activity log.
const (
	EventUserRegister  = "user.register"
	EventUserLogin     = "user.login"
	EventUserLogout    = "user.logout"
	EventUserUpdate    = "user.update"
	EventContactCreate = "contact.create"
	EventContactUpdate = "contact.update"
	EventContactDelete = "contact.delete"
	EventAddressCreate = "address.create"
	EventAddressUpdate = "address.update"
	EventAddressDelete = "address.delete"
)

// Event represents an entry in a user's activity log.
type Event struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Username  string    `gorm:"size:100;not null;index" json:"username"`
	Type      string    `gorm:"size:50;not null" json:"type"` // e.g., "contact.create"
	Message   string    `gorm:"not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName pins the table name independent of GORM's naming strategy.
func (Event) TableName() string { return "events" }
