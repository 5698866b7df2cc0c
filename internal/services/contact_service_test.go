package services

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(v int64) string { return strconv.FormatInt(v, 10) }

func TestCreateAndGetContact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "test")

	created, err := f.contacts.Create(ctx, user, models.CreateContactRequest{
		FirstName: "test",
		LastName:  "test",
		Email:     "test@gmail.com",
		Phone:     "081234567890",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := f.contacts.Get(ctx, user, id(created.ID))
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Contains(t, f.publisher.typesFor("test"), models.EventContactCreate)
}

func TestCreateContactInvalid(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "test")

	_, err := f.contacts.Create(context.Background(), user, models.CreateContactRequest{
		FirstName: "",
		Email:     "salah",
	})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestGetContactNotFound(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "test")

	_, err := f.contacts.Get(context.Background(), user, "999")
	requireStatus(t, err, http.StatusNotFound)

	_, err = f.contacts.Get(context.Background(), user, "abc")
	requireStatus(t, err, http.StatusBadRequest)
}

func TestUpdateContact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "test")
	c := f.createContacts(t, user, 1)[0]

	got, err := f.contacts.Update(ctx, user, models.UpdateContactRequest{
		ID:        c.ID,
		FirstName: "Hilmi",
		LastName:  "Yahya",
		Email:     "hilmi@gmail.com",
		Phone:     "081234567890",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContactResponse{
		ID:        c.ID,
		FirstName: "Hilmi",
		LastName:  "Yahya",
		Email:     "hilmi@gmail.com",
		Phone:     "081234567890",
	}, got)

	_, err = f.contacts.Update(ctx, user, models.UpdateContactRequest{ID: c.ID})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = f.contacts.Update(ctx, user, models.UpdateContactRequest{ID: c.ID + 1, FirstName: "x"})
	requireStatus(t, err, http.StatusNotFound)
}

func TestRemoveContact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "test")
	c := f.createContacts(t, user, 1)[0]

	require.NoError(t, f.contacts.Remove(ctx, user, id(c.ID)))

	_, err := f.contacts.Get(ctx, user, id(c.ID))
	requireStatus(t, err, http.StatusNotFound)

	err = f.contacts.Remove(ctx, user, id(c.ID))
	requireStatus(t, err, http.StatusNotFound)
}

func TestContactsOfAnotherUserAreInvisible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner")
	intruder := f.register(t, "intruder")
	c := f.createContacts(t, owner, 1)[0]

	_, err := f.contacts.Get(ctx, intruder, id(c.ID))
	requireStatus(t, err, http.StatusNotFound)

	_, err = f.contacts.Update(ctx, intruder, models.UpdateContactRequest{ID: c.ID, FirstName: "hacked"})
	requireStatus(t, err, http.StatusNotFound)

	err = f.contacts.Remove(ctx, intruder, id(c.ID))
	requireStatus(t, err, http.StatusNotFound)

	got, err := f.contacts.Get(ctx, owner, id(c.ID))
	require.NoError(t, err)
	assert.Equal(t, c, got)

	result, err := f.contacts.Search(ctx, intruder, models.SearchContactRequest{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, result.Data)
	assert.Zero(t, result.Paging.TotalItem)
}

func TestSearchPaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "test")
	f.createContacts(t, user, 15)

	page1, err := f.contacts.Search(ctx, user, models.SearchContactRequest{Page: models.DefaultPage, Size: models.DefaultPageSize})
	require.NoError(t, err)
	assert.Len(t, page1.Data, 10)
	assert.Equal(t, models.Paging{Page: 1, TotalItem: 15, TotalPage: 2}, page1.Paging)

	page2, err := f.contacts.Search(ctx, user, models.SearchContactRequest{Page: 2, Size: models.DefaultPageSize})
	require.NoError(t, err)
	assert.Len(t, page2.Data, 5)
	assert.Equal(t, models.Paging{Page: 2, TotalItem: 15, TotalPage: 2}, page2.Paging)
	assert.NotEqual(t, page1.Data[0].ID, page2.Data[0].ID)

	empty, err := f.contacts.Search(ctx, user, models.SearchContactRequest{Page: 3, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, empty.Data)
	assert.NotNil(t, empty.Data)
}

func TestSearchFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "test")
	f.createContacts(t, user, 15)

	cases := map[string]models.SearchContactRequest{
		"name":  {Name: "test 1", Page: 1, Size: 10},
		"email": {Email: "test1", Page: 1, Size: 10},
		"phone": {Phone: "081234567891", Page: 1, Size: 10},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := f.contacts.Search(ctx, user, req)
			require.NoError(t, err)
			assert.Len(t, got.Data, 6)
			assert.Equal(t, models.Paging{Page: 1, TotalItem: 6, TotalPage: 1}, got.Paging)
		})
	}
}

func TestSearchFiltersAreConjunctive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "test")
	f.createContacts(t, user, 15)

	got, err := f.contacts.Search(ctx, user, models.SearchContactRequest{
		Name:  "test 1",
		Email: "test12",
		Page:  1,
		Size:  10,
	})
	require.NoError(t, err)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "test12@gmail.com", got.Data[0].Email)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "test")
	f.createContacts(t, user, 5)
	for _, name := range []string{"50% off", "under_score", `back\slash`} {
		_, err := f.contacts.Create(ctx, user, models.CreateContactRequest{FirstName: name})
		require.NoError(t, err)
	}

	cases := map[string]struct {
		req  models.SearchContactRequest
		want []string
	}{
		"percent":    {models.SearchContactRequest{Name: "%"}, []string{"50% off"}},
		"underscore": {models.SearchContactRequest{Name: "_"}, []string{"under_score"}},
		"backslash":  {models.SearchContactRequest{Name: `\`}, []string{`back\slash`}},
		"email":      {models.SearchContactRequest{Email: "_"}, nil},
		"phone":      {models.SearchContactRequest{Phone: "%"}, nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			tc.req.Page, tc.req.Size = 1, 100
			got, err := f.contacts.Search(ctx, user, tc.req)
			require.NoError(t, err)

			var names []string
			for _, c := range got.Data {
				names = append(names, c.FirstName)
			}
			assert.Equal(t, tc.want, names)
			assert.Equal(t, int64(len(tc.want)), got.Paging.TotalItem)
		})
	}
}

func TestSearchIgnoresCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.register(t, "test")
	f.createContacts(t, user, 15)

	cases := map[string]models.SearchContactRequest{
		"name":  {Name: "TeSt 1", Page: 1, Size: 100},
		"email": {Email: "TEST1", Page: 1, Size: 100},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := f.contacts.Search(ctx, user, req)
			require.NoError(t, err)
			assert.Len(t, got.Data, 6)
		})
	}
}

func TestSearchInvalidPaging(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "test")

	_, err := f.contacts.Search(context.Background(), user, models.SearchContactRequest{Page: 0, Size: 500})
	requireStatus(t, err, http.StatusBadRequest)
}
