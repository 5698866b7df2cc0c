package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/isdelr/contact-book-be/internal/apierror"
	"github.com/isdelr/contact-book-be/internal/database"
	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/isdelr/contact-book-be/internal/validation"
	"gorm.io/gorm"
)

// ContactServiceProvider defines the interface for contact services.
type ContactServiceProvider interface {
	Create(ctx context.Context, user models.User, req models.CreateContactRequest) (models.ContactResponse, error)
	Get(ctx context.Context, user models.User, contactID string) (models.ContactResponse, error)
	Update(ctx context.Context, user models.User, req models.UpdateContactRequest) (models.ContactResponse, error)
	Remove(ctx context.Context, user models.User, contactID string) error
	Search(ctx context.Context, user models.User, req models.SearchContactRequest) (models.SearchContactResult, error)
}

// ContactService provides business logic for a user's contacts. Every query
// is scoped to the acting user's username.
type ContactService struct {
	db     *gorm.DB
	events EventServiceProvider
}

// NewContactService creates a new ContactService.
func NewContactService(db *gorm.DB, events EventServiceProvider) *ContactService {
	return &ContactService{db: db, events: events}
}

// Create stores a new contact owned by user.
func (s *ContactService) Create(ctx context.Context, user models.User, req models.CreateContactRequest) (models.ContactResponse, error) {
	if err := validation.Struct(req); err != nil {
		return models.ContactResponse{}, err
	}

	contact := models.Contact{
		Username:  user.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := s.db.WithContext(ctx).Create(&contact).Error; err != nil {
		return models.ContactResponse{}, fmt.Errorf("failed to create contact: %w", err)
	}

	s.events.Record(ctx, user.Username, models.EventContactCreate, fmt.Sprintf("Contact %d created", contact.ID))
	return contact.ToResponse(), nil
}

// Get retrieves one of user's contacts.
func (s *ContactService) Get(ctx context.Context, user models.User, contactID string) (models.ContactResponse, error) {
	id, err := validation.ID("contactId", contactID)
	if err != nil {
		return models.ContactResponse{}, err
	}

	contact, err := s.find(ctx, user, id)
	if err != nil {
		return models.ContactResponse{}, err
	}
	return contact.ToResponse(), nil
}

// Update overwrites every field of one of user's contacts. The UPDATE itself
// is scoped to the owner, so a contact of another user is never modified.
func (s *ContactService) Update(ctx context.Context, user models.User, req models.UpdateContactRequest) (models.ContactResponse, error) {
	if err := validation.Struct(req); err != nil {
		return models.ContactResponse{}, err
	}

	res := s.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("id = ? AND username = ?", req.ID, user.Username).
		Updates(map[string]interface{}{
			"first_name": req.FirstName,
			"last_name":  req.LastName,
			"email":      req.Email,
			"phone":      req.Phone,
		})
	if res.Error != nil {
		return models.ContactResponse{}, fmt.Errorf("failed to update contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ContactResponse{}, apierror.NotFound(msgContactNotFound)
	}

	contact, err := s.find(ctx, user, req.ID)
	if err != nil {
		return models.ContactResponse{}, err
	}

	s.events.Record(ctx, user.Username, models.EventContactUpdate, fmt.Sprintf("Contact %d updated", contact.ID))
	return contact.ToResponse(), nil
}

// Remove deletes one of user's contacts along with its addresses.
func (s *ContactService) Remove(ctx context.Context, user models.User, contactID string) error {
	id, err := validation.ID("contactId", contactID)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("id = ? AND username = ?", id, user.Username).
		Delete(&models.Contact{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apierror.NotFound(msgContactNotFound)
	}

	s.events.Record(ctx, user.Username, models.EventContactDelete, fmt.Sprintf("Contact %d deleted", id))
	return nil
}

// Search returns one page of user's contacts matching the optional filters,
// together with the total number of matches.
func (s *ContactService) Search(ctx context.Context, user models.User, req models.SearchContactRequest) (models.SearchContactResult, error) {
	if err := validation.Struct(req); err != nil {
		return models.SearchContactResult{}, err
	}

	filter := contactFilter(user, req)

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Contact{}).Scopes(filter).Count(&total).Error; err != nil {
		return models.SearchContactResult{}, fmt.Errorf("failed to count contacts: %w", err)
	}

	var contacts []models.Contact
	err := s.db.WithContext(ctx).
		Scopes(filter).
		Order("id").
		Offset((req.Page - 1) * req.Size).
		Limit(req.Size).
		Find(&contacts).Error
	if err != nil {
		return models.SearchContactResult{}, fmt.Errorf("failed to search contacts: %w", err)
	}

	data := make([]models.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		data = append(data, c.ToResponse())
	}

	return models.SearchContactResult{
		Data: data,
		Paging: models.Paging{
			Page:      req.Page,
			TotalItem: total,
			TotalPage: int((total + int64(req.Size) - 1) / int64(req.Size)),
		},
	}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally as a substring.
// Queries using it must declare ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// contactFilter ANDs the owner scope with each filter that was given.
func contactFilter(user models.User, req models.SearchContactRequest) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("username = ?", user.Username)
		if req.Name != "" {
			name := containsPattern(req.Name)
			tx = tx.Where(`(LOWER(first_name) LIKE LOWER(?) ESCAPE '\' OR LOWER(last_name) LIKE LOWER(?) ESCAPE '\')`, name, name)
		}
		if req.Email != "" {
			tx = tx.Where(`LOWER(email) LIKE LOWER(?) ESCAPE '\'`, containsPattern(req.Email))
		}
		if req.Phone != "" {
			tx = tx.Where(`LOWER(phone) LIKE LOWER(?) ESCAPE '\'`, containsPattern(req.Phone))
		}
		return tx
	}
}

func (s *ContactService) find(ctx context.Context, user models.User, id int64) (models.Contact, error) {
	var contact models.Contact
	err := s.db.WithContext(ctx).
		Where("id = ? AND username = ?", id, user.Username).
		First(&contact).Error
	if err != nil {
		if database.IsRecordNotFound(err) {
			return models.Contact{}, apierror.NotFound(msgContactNotFound)
		}
		return models.Contact{}, fmt.Errorf("failed to look up contact: %w", err)
	}
	return contact, nil
}
