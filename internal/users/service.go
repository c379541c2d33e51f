// Package users serves account profiles to their owners and to
// administrators.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"grocerystore/internal/auth"
	"grocerystore/internal/models"
	"grocerystore/internal/repository"
	"grocerystore/internal/response"
)

// PasswordHasher hashes new passwords before they are stored.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// editable lists the profile fields a request may set.
var editable = map[string]bool{
	"firstName":     true,
	"lastName":      true,
	"email":         true,
	"password":      true,
	"contactNumber": true,
	"postalCode":    true,
	"type":          true,
	"status":        true,
}

// managed fields exist on the document but are maintained by the server.
var managed = map[string]bool{
	"dateRegistered": true,
	"orders":         true,
}

var allowedValues = map[string][]string{
	"type":   {models.UserTypeStandard, models.UserTypeAdministrator},
	"status": {models.StatusActive, models.StatusInactive},
}

type Service struct {
	users  repository.UserRepository
	hasher PasswordHasher
	log    *zap.Logger
}

func NewService(users repository.UserRepository, hasher PasswordHasher, log *zap.Logger) *Service {
	return &Service{users: users, hasher: hasher, log: log.Named("users")}
}

// Get returns the profile with the given id.
func (s *Service) Get(ctx context.Context, viewer models.User, rawID string) (models.User, error) {
	user, err := s.find(ctx, rawID)
	if err != nil {
		return models.User{}, err
	}
	if !canAccess(viewer, user) {
		return models.User{}, response.New(response.Forbidden, "Only an administrator or owner can view user data.")
	}
	return user, nil
}

// Update applies the fields in body to the profile with the given id.
func (s *Service) Update(ctx context.Context, viewer models.User, rawID string, body []byte) (models.User, error) {
	user, err := s.find(ctx, rawID)
	if err != nil {
		return models.User{}, err
	}
	if !canAccess(viewer, user) {
		return models.User{}, response.New(response.Forbidden, "Only an administrator or owner can update the user.")
	}

	fields, err := decodeFields(body)
	if err != nil {
		return models.User{}, err
	}
	set, err := s.buildSet(viewer, fields)
	if err != nil {
		return models.User{}, err
	}

	updated, err := s.users.UpdateUser(ctx, user.ID, set)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return models.User{}, response.Errorf(response.Conflict, "Email %s is already registered.", set["email"])
	case errors.Is(err, repository.ErrNotFound):
		return models.User{}, response.Errorf(response.NotFound, "User with _id %s not found.", user.ID.Hex())
	case err != nil:
		return models.User{}, response.Storage("update user", err)
	}

	s.log.Info("user updated", zap.String("user_id", updated.ID.Hex()), zap.Strings("fields", sortedKeys(set)))
	return updated, nil
}

// Delete removes the profile with the given id and returns it.
func (s *Service) Delete(ctx context.Context, viewer models.User, rawID string) (models.User, error) {
	user, err := s.find(ctx, rawID)
	if err != nil {
		return models.User{}, err
	}
	if !canAccess(viewer, user) {
		return models.User{}, response.New(response.Forbidden, "Only an administrator or owner can remove the user.")
	}

	err = s.users.DeleteUser(ctx, user.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.User{}, response.Errorf(response.NotFound, "User with _id %s not found.", user.ID.Hex())
	case err != nil:
		return models.User{}, response.Storage("delete user", err)
	}

	s.log.Info("user removed", zap.String("user_id", user.ID.Hex()), zap.String("by", viewer.ID.Hex()))
	return user, nil
}

func (s *Service) find(ctx context.Context, rawID string) (models.User, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return models.User{}, response.Errorf(response.CastError, "Invalid user _id: '%s'.", rawID)
	}
	user, err := s.users.FindUser(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.User{}, response.Errorf(response.NotFound, "User with _id %s not found.", rawID)
	case err != nil:
		return models.User{}, response.Storage("find user", err)
	}
	return user, nil
}

func (s *Service) buildSet(viewer models.User, fields map[string]interface{}) (bson.M, error) {
	if len(fields) == 0 {
		return nil, response.New(response.InputError, "No fields provided within request body.")
	}

	var wrongType []string
	for _, name := range sortedKeys(fields) {
		switch {
		case name == "_id":
			return nil, response.New(response.IncorrectField, "Update to _id field is not allowed.")
		case managed[name]:
			return nil, response.Errorf(response.IncorrectField, "Field %s cannot be updated.", name)
		case !editable[name]:
			return nil, response.Errorf(response.IncorrectField, "Field %s is not defined in data schema.", name)
		}
		if _, ok := fields[name].(string); !ok {
			wrongType = append(wrongType, name)
		}
	}
	if len(wrongType) > 0 {
		return nil, response.Errorf(response.CastError, "Incorrect type for the following fields: %s", strings.Join(wrongType, ", "))
	}

	if _, ok := fields["type"]; ok && !viewer.IsAdmin() {
		return nil, response.New(response.Forbidden, "User type can only be modified by an administrator.")
	}

	set := bson.M{}
	for name, raw := range fields {
		value := strings.TrimSpace(raw.(string))
		if allowed, ok := allowedValues[name]; ok && !contains(allowed, value) {
			return nil, response.Errorf(response.ValidationError, "'%s' is not a valid value for %s.", value, name)
		}

		switch name {
		case "email":
			value = auth.NormalizeEmail(value)
			if value == "" {
				return nil, response.New(response.ValidationError, "Path 'email' is required.")
			}
		case "firstName":
			if value == "" {
				return nil, response.New(response.ValidationError, "Path 'firstName' is required.")
			}
		case "password":
			if raw.(string) == "" {
				return nil, response.New(response.ValidationError, "Path 'password' is required.")
			}
			hash, err := s.hasher.HashPassword(raw.(string))
			if err != nil {
				return nil, err
			}
			value = hash
		}
		set[name] = value
	}
	return set, nil
}

func canAccess(viewer, target models.User) bool {
	return viewer.IsAdmin() || viewer.ID == target.ID
}

func decodeFields(body []byte) (map[string]interface{}, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, response.New(response.InputError, "No fields provided within request body.")
	}
	var root interface{}
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, response.FromDecode(err)
	}
	fields, ok := root.(map[string]interface{})
	if !ok {
		return nil, response.New(response.InputError, "No fields provided within request body.")
	}
	return fields, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
