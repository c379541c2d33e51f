package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"grocerystore/internal/models"
	"grocerystore/internal/repository"
	"grocerystore/internal/repository/memory"
	"grocerystore/internal/response"
)

type cheapHasher struct{}

func (cheapHasher) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash), err
}

func seedUser(t *testing.T, repo repository.UserRepository, email, userType string) models.User {
	t.Helper()
	user := models.User{
		ID:             primitive.NewObjectID(),
		FirstName:      "Test",
		Email:          email,
		DateRegistered: time.Now().UTC(),
		Type:           userType,
		Status:         models.StatusActive,
	}
	require.NoError(t, repo.InsertUser(context.Background(), &user))
	return user
}

func setup(t *testing.T) (*Service, models.User, models.User, models.User) {
	t.Helper()
	store := memory.New().Repositories()
	svc := NewService(store.Users, cheapHasher{}, zap.NewNop())
	owner := seedUser(t, store.Users, "owner@email.com", models.UserTypeStandard)
	other := seedUser(t, store.Users, "other@email.com", models.UserTypeStandard)
	admin := seedUser(t, store.Users, "admin@email.com", models.UserTypeAdministrator)
	return svc, owner, other, admin
}

func TestGetChecksAccess(t *testing.T) {
	svc, owner, other, admin := setup(t)
	ctx := context.Background()

	got, err := svc.Get(ctx, owner, owner.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, owner.Email, got.Email)

	_, err = svc.Get(ctx, admin, owner.ID.Hex())
	assert.NoError(t, err)

	_, err = svc.Get(ctx, other, owner.ID.Hex())
	assert.True(t, response.IsKind(err, response.Forbidden))

	_, err = svc.Get(ctx, admin, primitive.NewObjectID().Hex())
	assert.True(t, response.IsKind(err, response.NotFound))

	_, err = svc.Get(ctx, admin, "nope")
	assert.True(t, response.IsKind(err, response.CastError))
}

func TestUpdateProfile(t *testing.T) {
	svc, owner, _, _ := setup(t)
	ctx := context.Background()

	updated, err := svc.Update(ctx, owner, owner.ID.Hex(), []byte(`{"lastName":"Doe","email":"NEW@email.com","password":"secret"}`))
	require.NoError(t, err)
	assert.Equal(t, "Doe", updated.LastName)
	assert.Equal(t, "new@email.com", updated.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("secret")))
}

func TestUpdateRejections(t *testing.T) {
	svc, owner, other, admin := setup(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		viewer models.User
		body   string
		kind   response.Kind
		msg    string
	}{
		{"stranger", other, `{"lastName":"X"}`, response.Forbidden, "Only an administrator or owner can update the user."},
		{"empty", owner, `{}`, response.InputError, "No fields provided within request body."},
		{"id", owner, `{"_id":"abc"}`, response.IncorrectField, "Update to _id field is not allowed."},
		{"unknown field", owner, `{"nickname":"J"}`, response.IncorrectField, "Field nickname is not defined in data schema."},
		{"orders", owner, `{"orders":[]}`, response.IncorrectField, "Field orders cannot be updated."},
		{"wrong types", owner, `{"lastName":1,"postalCode":true}`, response.CastError, "Incorrect type for the following fields: lastName, postalCode"},
		{"self promotion", owner, `{"type":"Administrator"}`, response.Forbidden, "User type can only be modified by an administrator."},
		{"bad type", admin, `{"type":"Root"}`, response.ValidationError, "'Root' is not a valid value for type."},
		{"taken email", owner, `{"email":"other@email.com"}`, response.Conflict, "Email other@email.com is already registered."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, tt.viewer, owner.ID.Hex(), []byte(tt.body))
			require.Error(t, err)
			var appErr *response.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.Equal(t, tt.msg, appErr.Message)
		})
	}
}

func TestAdminCanChangeType(t *testing.T) {
	svc, owner, _, admin := setup(t)

	updated, err := svc.Update(context.Background(), admin, owner.ID.Hex(), []byte(`{"type":"Administrator"}`))
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())
}

func TestDelete(t *testing.T) {
	svc, owner, other, admin := setup(t)
	ctx := context.Background()

	_, err := svc.Delete(ctx, other, owner.ID.Hex())
	assert.True(t, response.IsKind(err, response.Forbidden))

	removed, err := svc.Delete(ctx, admin, owner.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, owner.Email, removed.Email)

	_, err = svc.Get(ctx, admin, owner.ID.Hex())
	assert.True(t, response.IsKind(err, response.NotFound))
}
