package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/isdelr/contact-book-be/internal/apierror"
	"github.com/isdelr/contact-book-be/internal/database/dbtest"
	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events map[string][]models.Event
}

func (p *recordingPublisher) Publish(username string, event models.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.events == nil {
		p.events = map[string][]models.Event{}
	}
	p.events[username] = append(p.events[username], event)
}

func (p *recordingPublisher) typesFor(username string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events[username] {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	db        *gorm.DB
	publisher *recordingPublisher
	events    *EventService
	users     *UserService
	contacts  *ContactService
	addresses *AddressService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	publisher := &recordingPublisher{}
	events := NewEventService(db, publisher)
	return &fixture{
		db:        db,
		publisher: publisher,
		events:    events,
		users:     NewUserService(db, events, bcrypt.MinCost),
		contacts:  NewContactService(db, events),
		addresses: NewAddressService(db, events),
	}
}

// register creates an account and returns it as the auth middleware would.
func (f *fixture) register(t *testing.T, username string) models.User {
	t.Helper()
	_, err := f.users.Register(context.Background(), models.RegisterUserRequest{
		Username: username,
		Password: "rahasia",
		Name:     username,
	})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, f.db.Where("username = ?", username).First(&user).Error)
	return user
}

func (f *fixture) createContacts(t *testing.T, user models.User, n int) []models.ContactResponse {
	t.Helper()
	out := make([]models.ContactResponse, 0, n)
	for i := 0; i < n; i++ {
		c, err := f.contacts.Create(context.Background(), user, models.CreateContactRequest{
			FirstName: fmt.Sprintf("test %d", i),
			LastName:  fmt.Sprintf("test %d", i),
			Email:     fmt.Sprintf("test%d@gmail.com", i),
			Phone:     fmt.Sprintf("08123456789%d", i),
		})
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func requireStatus(t *testing.T, err error, status int) *apierror.Error {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := apierror.As(err)
	require.True(t, ok, "expected *apierror.Error, got %T: %v", err, err)
	require.Equal(t, status, apiErr.Status, apiErr.Message)
	return apiErr
}

var (
	_ UserServiceProvider    = (*UserService)(nil)
	_ ContactServiceProvider = (*ContactService)(nil)
	_ AddressServiceProvider = (*AddressService)(nil)
	_ EventServiceProvider   = (*EventService)(nil)
)
