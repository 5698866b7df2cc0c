package services

import (
	"context"
	"fmt"

	"github.com/isdelr/contact-book-be/internal/apierror"
	"github.com/isdelr/contact-book-be/internal/database"
	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/isdelr/contact-book-be/internal/validation"
	"gorm.io/gorm"
)

const msgAddressNotFound = "Address not found"

// AddressServiceProvider defines the interface for address services.
type AddressServiceProvider interface {
	Create(ctx context.Context, user models.User, contactID string, req models.CreateAddressRequest) (models.AddressResponse, error)
	Get(ctx context.Context, user models.User, contactID, addressID string) (models.AddressResponse, error)
	List(ctx context.Context, user models.User, contactID string) ([]models.AddressResponse, error)
	Update(ctx context.Context, user models.User, contactID string, req models.UpdateAddressRequest) (models.AddressResponse, error)
	Remove(ctx context.Context, user models.User, contactID, addressID string) error
}

// AddressService provides business logic for addresses. Every operation
// first proves the parent contact belongs to the acting user.
type AddressService struct {
	db     *gorm.DB
	events EventServiceProvider
}

// NewAddressService creates a new AddressService.
func NewAddressService(db *gorm.DB, events EventServiceProvider) *AddressService {
	return &AddressService{db: db, events: events}
}

// Create adds an address to one of user's contacts.
func (s *AddressService) Create(ctx context.Context, user models.User, contactID string, req models.CreateAddressRequest) (models.AddressResponse, error) {
	cid, err := requireContactOwnership(ctx, s.db, user, contactID)
	if err != nil {
		return models.AddressResponse{}, err
	}
	if err := validation.Struct(req); err != nil {
		return models.AddressResponse{}, err
	}

	address := models.Address{
		ContactID:  cid,
		Street:     req.Street,
		City:       req.City,
		Province:   req.Province,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
	if err := s.db.WithContext(ctx).Create(&address).Error; err != nil {
		return models.AddressResponse{}, fmt.Errorf("failed to create address: %w", err)
	}

	s.events.Record(ctx, user.Username, models.EventAddressCreate,
		fmt.Sprintf("Address %d added to contact %d", address.ID, cid))
	return address.ToResponse(), nil
}

// Get retrieves a single address of one of user's contacts.
func (s *AddressService) Get(ctx context.Context, user models.User, contactID, addressID string) (models.AddressResponse, error) {
	cid, err := requireContactOwnership(ctx, s.db, user, contactID)
	if err != nil {
		return models.AddressResponse{}, err
	}
	aid, err := validation.ID("addressId", addressID)
	if err != nil {
		return models.AddressResponse{}, err
	}

	address, err := s.find(ctx, cid, aid)
	if err != nil {
		return models.AddressResponse{}, err
	}
	return address.ToResponse(), nil
}

// List returns every address of one of user's contacts.
func (s *AddressService) List(ctx context.Context, user models.User, contactID string) ([]models.AddressResponse, error) {
	cid, err := requireContactOwnership(ctx, s.db, user, contactID)
	if err != nil {
		return nil, err
	}

	var addresses []models.Address
	if err := s.db.WithContext(ctx).Where("contact_id = ?", cid).Order("id").Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}

	out := make([]models.AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, a.ToResponse())
	}
	return out, nil
}

// Update overwrites every field of an address.
func (s *AddressService) Update(ctx context.Context, user models.User, contactID string, req models.UpdateAddressRequest) (models.AddressResponse, error) {
	cid, err := requireContactOwnership(ctx, s.db, user, contactID)
	if err != nil {
		return models.AddressResponse{}, err
	}
	if err := validation.Struct(req); err != nil {
		return models.AddressResponse{}, err
	}

	res := s.db.WithContext(ctx).
		Model(&models.Address{}).
		Where("id = ? AND contact_id = ?", req.ID, cid).
		Updates(map[string]interface{}{
			"street":      req.Street,
			"city":        req.City,
			"province":    req.Province,
			"country":     req.Country,
			"postal_code": req.PostalCode,
		})
	if res.Error != nil {
		return models.AddressResponse{}, fmt.Errorf("failed to update address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.AddressResponse{}, apierror.NotFound(msgAddressNotFound)
	}

	address, err := s.find(ctx, cid, req.ID)
	if err != nil {
		return models.AddressResponse{}, err
	}

	s.events.Record(ctx, user.Username, models.EventAddressUpdate,
		fmt.Sprintf("Address %d of contact %d updated", address.ID, cid))
	return address.ToResponse(), nil
}

// Remove deletes an address.
func (s *AddressService) Remove(ctx context.Context, user models.User, contactID, addressID string) error {
	cid, err := requireContactOwnership(ctx, s.db, user, contactID)
	if err != nil {
		return err
	}
	aid, err := validation.ID("addressId", addressID)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("id = ? AND contact_id = ?", aid, cid).
		Delete(&models.Address{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apierror.NotFound(msgAddressNotFound)
	}

	s.events.Record(ctx, user.Username, models.EventAddressDelete,
		fmt.Sprintf("Address %d removed from contact %d", aid, cid))
	return nil
}

func (s *AddressService) find(ctx context.Context, contactID, addressID int64) (models.Address, error) {
	var address models.Address
	err := s.db.WithContext(ctx).
		Where("id = ? AND contact_id = ?", addressID, contactID).
		First(&address).Error
	if err != nil {
		if database.IsRecordNotFound(err) {
			return models.Address{}, apierror.NotFound(msgAddressNotFound)
		}
		return models.Address{}, fmt.Errorf("failed to look up address: %w", err)
	}
	return address, nil
}
