package models

import "time"

// Address belongs to a contact and is only reachable through it.
type Address struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	ContactID  int64  `gorm:"not null;index"`
	Street     string `gorm:"size:200;not null;default:''"`
	City       string `gorm:"size:200;not null;default:''"`
	Province   string `gorm:"size:200;not null;default:''"`
	Country    string `gorm:"size:200;not null;default:''"`
	PostalCode string `gorm:"size:10;not null;default:''"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName pins the table name independent of GORM's naming strategy.
func (Address) TableName() string { return "addresses" }

// AddressResponse is the projection returned to the contact's owner.
type AddressResponse struct {
	ID         int64  `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// ToResponse projects the address.
func (a Address) ToResponse() AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

// CreateAddressRequest is the payload for POST /api/contacts/{contactId}/addresses.
type CreateAddressRequest struct {
	Street     string `json:"street" validate:"max=200"`
	City       string `json:"city" validate:"max=200"`
	Province   string `json:"province" validate:"max=200"`
	Country    string `json:"country" validate:"max=200"`
	PostalCode string `json:"postal_code" validate:"max=10"`
}

// UpdateAddressRequest replaces every field of an existing address.
type UpdateAddressRequest struct {
	ID         int64  `json:"id" validate:"required,min=1"`
	Street     string `json:"street" validate:"max=200"`
	City       string `json:"city" validate:"max=200"`
	Province   string `json:"province" validate:"max=200"`
	Country    string `json:"country" validate:"max=200"`
	PostalCode string `json:"postal_code" validate:"max=10"`
}
