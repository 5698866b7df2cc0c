package models

import "time"

// Contact is a person record owned by exactly one user.
type Contact struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"size:100;not null;index"`
	FirstName string    `gorm:"size:100;not null"`
	LastName  string    `gorm:"size:100;not null;default:''"`
	Email     string    `gorm:"size:200;not null;default:''"`
	Phone     string    `gorm:"size:20;not null;default:''"`
	Addresses []Address `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name independent of GORM's naming strategy.
func (Contact) TableName() string { return "contacts" }

// ContactResponse is the projection returned to the owner.
type ContactResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ToResponse projects the contact.
func (c Contact) ToResponse() ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

// CreateContactRequest is the payload for POST /api/contacts.
type CreateContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,max=200,email"`
	Phone     string `json:"phone" validate:"max=20"`
}

// UpdateContactRequest is the payload for PUT /api/contacts/{contactId}.
// Every field is written; omitted optional fields are cleared.
type UpdateContactRequest struct {
	ID        int64  `json:"id" validate:"required,min=1"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"omitempty,max=200,email"`
	Phone     string `json:"phone" validate:"max=20"`
}

// Default paging for contact search.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// SearchContactRequest filters the caller's contacts. Name matches either
// first or last name. All text filters are substring matches.
type SearchContactRequest struct {
	Name  string `json:"name" validate:"max=100"`
	Email string `json:"email" validate:"max=200"`
	Phone string `json:"phone" validate:"max=20"`
	Page  int    `json:"page" validate:"min=1"`
	Size  int    `json:"size" validate:"min=1,max=100"`
}

// Paging describes the page returned by a search.
type Paging struct {
	Page      int   `json:"page"`
	TotalItem int64 `json:"total_item"`
	TotalPage int   `json:"total_page"`
}

// SearchContactResult is one page of contacts.
type SearchContactResult struct {
	Data   []ContactResponse `json:"data"`
	Paging Paging            `json:"paging"`
}
