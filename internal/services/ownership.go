package services

import (
	"context"
	"fmt"

	"github.com/isdelr/contact-book-be/internal/apierror"
	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/isdelr/contact-book-be/internal/validation"
	"gorm.io/gorm"
)

const msgContactNotFound = "Contact not found"

// requireContactOwnership validates rawContactID and confirms exactly one
// contact with that id belongs to user. Contacts owned by someone else are
// reported as not found.
func requireContactOwnership(ctx context.Context, db *gorm.DB, user models.User, rawContactID string) (int64, error) {
	contactID, err := validation.ID("contactId", rawContactID)
	if err != nil {
		return 0, err
	}

	var count int64
	err = db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("id = ? AND username = ?", contactID, user.Username).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to check contact ownership: %w", err)
	}
	if count != 1 {
		return 0, apierror.NotFound(msgContactNotFound)
	}
	return contactID, nil
}
