package models

import "time"

// User represents an account. Username is the primary key.
type User struct {
	Username  string    `gorm:"primaryKey;size:100" json:"username"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Password  string    `gorm:"size:100;not null" json:"-"` // bcrypt hash, never exposed
	Token     *string   `gorm:"size:100;uniqueIndex" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	Contacts  []Contact `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// TableName pins the table name independent of GORM's naming strategy.
func (User) TableName() string { return "users" }

// UserResponse is the public projection of a User.
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// ToResponse projects the user without sensitive fields.
func (u User) ToResponse() UserResponse {
	return UserResponse{Username: u.Username, Name: u.Name}
}

// RegisterUserRequest is the payload for POST /api/users.
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginUserRequest is the payload for POST /api/users/login.
type LoginUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=100"`
}

// UpdateUserRequest is the payload for PATCH /api/users/current.
// Username identifies the row and is always taken from the session.
// Name and Password are only applied when present in the request.
type UpdateUserRequest struct {
	Username string           `json:"username" validate:"required,max=100"`
	Name     Optional[string] `json:"name" validate:"omitnil,min=1,max=100"`
	Password Optional[string] `json:"password" validate:"omitnil,min=1,max=100"`
}
