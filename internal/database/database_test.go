package database_test

import (
	"errors"
	"testing"

	"github.com/isdelr/contact-book-be/internal/database"
	"github.com/isdelr/contact-book-be/internal/database/dbtest"
	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := database.New("oracle", "whatever")
	assert.Error(t, err)
}

func TestDuplicateUsernameIsUniqueViolation(t *testing.T) {
	db := dbtest.New(t)

	user := models.User{Username: "test", Name: "test", Password: "hash"}
	require.NoError(t, db.Create(&user).Error)

	dup := models.User{Username: "test", Name: "other", Password: "hash"}
	err := db.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err), "got %v", err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeletingContactCascadesToAddresses(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, db.Create(&models.User{Username: "test", Name: "test", Password: "hash"}).Error)
	contact := models.Contact{Username: "test", FirstName: "a"}
	require.NoError(t, db.Create(&contact).Error)
	require.NoError(t, db.Create(&models.Address{ContactID: contact.ID, Country: "ID"}).Error)

	require.NoError(t, db.Delete(&models.Contact{}, contact.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.Address{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestIsUniqueViolationClassification(t *testing.T) {
	assert.False(t, database.IsUniqueViolation(nil))
	assert.False(t, database.IsUniqueViolation(errors.New("boom")))
	assert.True(t, database.IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, database.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, database.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsRecordNotFound(t *testing.T) {
	db := dbtest.New(t)

	var user models.User
	err := db.Where("username = ?", "missing").First(&user).Error
	assert.True(t, database.IsRecordNotFound(err))
}

type foreignKey struct {
	Table    string `gorm:"column:table"`
	From     string `gorm:"column:from"`
	To       string `gorm:"column:to"`
	OnDelete string `gorm:"column:on_delete"`
}

func foreignKeys(t *testing.T, db *gorm.DB, table string) []foreignKey {
	t.Helper()
	var fks []foreignKey
	require.NoError(t, db.Raw(`SELECT "table", "from", "to", on_delete FROM pragma_foreign_key_list(?)`, table).Scan(&fks).Error)
	return fks
}

func TestMigrateForeignKeys(t *testing.T) {
	db := dbtest.New(t)

	assert.Empty(t, foreignKeys(t, db, "users"))
	assert.Equal(t, []foreignKey{{Table: "users", From: "username", To: "username", OnDelete: "CASCADE"}}, foreignKeys(t, db, "contacts"))
	assert.Equal(t, []foreignKey{{Table: "contacts", From: "contact_id", To: "id", OnDelete: "CASCADE"}}, foreignKeys(t, db, "addresses"))
	assert.Empty(t, foreignKeys(t, db, "events"))
}

func TestContactRequiresExistingUser(t *testing.T) {
	db := dbtest.New(t)

	err := db.Create(&models.Contact{Username: "ghost", FirstName: "a"}).Error
	assert.Error(t, err)
}

func TestDeletingUserCascadesToContactsAndAddresses(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, db.Create(&models.User{Username: "test", Name: "test", Password: "hash"}).Error)
	contact := models.Contact{Username: "test", FirstName: "a"}
	require.NoError(t, db.Create(&contact).Error)
	require.NoError(t, db.Create(&models.Address{ContactID: contact.ID}).Error)

	require.NoError(t, db.Delete(&models.User{Username: "test"}).Error)

	var contacts, addresses int64
	require.NoError(t, db.Model(&models.Contact{}).Count(&contacts).Error)
	require.NoError(t, db.Model(&models.Address{}).Count(&addresses).Error)
	assert.Zero(t, contacts)
	assert.Zero(t, addresses)
}
