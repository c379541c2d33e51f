// Package auth registers users and issues, refreshes and revokes their
// tokens.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"grocerystore/internal/models"
	"grocerystore/internal/repository"
	"grocerystore/internal/response"
)

const (
	registrationFormat = "Required format for request body: { 'firstName': 'Jane', 'email': 'jane@email.com', 'password': 'passwordString' }"
	loginFormat        = "Required format for request body: { 'email': 'name@email.com', 'password': 'passwordString' }"
	refreshFormat      = "Required format for request body: { 'refreshToken': 'tokenString' }"
)

type Service struct {
	users      repository.UserRepository
	tokens     repository.TokenRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	hashCost   int
	log        *zap.Logger
	now        func() time.Time
}

func NewService(users repository.UserRepository, tokens repository.TokenRepository, secret string, accessTTL, refreshTTL time.Duration, log *zap.Logger) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		hashCost:   bcrypt.DefaultCost,
		log:        log.Named("auth"),
		now:        time.Now,
	}
}

// HashPassword hashes a password for storage.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NormalizeEmail is how emails are compared and stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate resolves an access token to the user it was issued for.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (models.User, error) {
	claims, err := parseAccessToken(rawToken, s.secret)
	if err != nil {
		return models.User{}, &response.Error{Kind: response.Unauthorized, Message: "Invalid or expired access token.", Err: err}
	}

	user, err := s.users.FindUser(ctx, claims.UserID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.User{}, response.New(response.Unauthorized, "User login required.")
	case err != nil:
		return models.User{}, response.Storage("find user", err)
	}
	if user.Status != models.StatusActive {
		return models.User{}, response.New(response.Forbidden, "User account is inactive.")
	}
	return user, nil
}

type registration struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactNumber string `json:"contactNumber"`
	PostalCode    string `json:"postalCode"`
}

// Register creates a Standard account and signs it in.
func (s *Service) Register(ctx context.Context, body []byte) (models.User, Tokens, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return models.User{}, Tokens{}, err
	}
	if !allStrings(fields, "firstName", "email", "password") {
		return models.User{}, Tokens{}, response.New(response.InputError, registrationFormat)
	}
	var input registration
	if err := json.Unmarshal(body, &input); err != nil {
		return models.User{}, Tokens{}, response.FromDecode(err)
	}

	email := NormalizeEmail(input.Email)
	if email == "" || strings.TrimSpace(input.Password) == "" || strings.TrimSpace(input.FirstName) == "" {
		return models.User{}, Tokens{}, response.New(response.InputError, registrationFormat)
	}

	_, err = s.users.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return models.User{}, Tokens{}, alreadyRegistered(email)
	case !errors.Is(err, repository.ErrNotFound):
		return models.User{}, Tokens{}, response.Storage("find user", err)
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return models.User{}, Tokens{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:             primitive.NewObjectID(),
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Email:          email,
		PasswordHash:   hash,
		ContactNumber:  strings.TrimSpace(input.ContactNumber),
		PostalCode:     strings.TrimSpace(input.PostalCode),
		DateRegistered: s.now().UTC(),
		Orders:         models.RefList{},
		Type:           models.UserTypeStandard,
		Status:         models.StatusActive,
	}
	if err := s.users.InsertUser(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, Tokens{}, alreadyRegistered(email)
		}
		return models.User{}, Tokens{}, response.Storage("insert user", err)
	}

	tokens, err := s.issue(ctx, user)
	if err != nil {
		return models.User{}, Tokens{}, err
	}
	s.log.Info("user registered", zap.String("user_id", user.ID.Hex()))
	return user, tokens, nil
}

func alreadyRegistered(email string) error {
	return response.Errorf(response.Conflict, "Email %s is already registered.", email)
}

// Login checks credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, body []byte) (models.User, Tokens, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return models.User{}, Tokens{}, err
	}
	if !allStrings(fields, "email", "password") {
		return models.User{}, Tokens{}, response.New(response.InputError, loginFormat)
	}
	email := NormalizeEmail(fields["email"].(string))
	password := fields["password"].(string)

	incorrect := response.New(response.Unauthorized, "Incorrect login credentials.")
	user, err := s.users.FindUserByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.User{}, Tokens{}, incorrect
	case err != nil:
		return models.User{}, Tokens{}, response.Storage("find user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Debug("login rejected", zap.String("user_id", user.ID.Hex()))
		return models.User{}, Tokens{}, incorrect
	}
	if user.Status != models.StatusActive {
		return models.User{}, Tokens{}, response.New(response.Forbidden, "User account is inactive.")
	}

	tokens, err := s.issue(ctx, user)
	if err != nil {
		return models.User{}, Tokens{}, err
	}
	s.log.Info("user logged in", zap.String("user_id", user.ID.Hex()))
	return user, tokens, nil
}

// Refresh rotates a refresh token: the presented one is revoked and
// replaced by a new pair.
func (s *Service) Refresh(ctx context.Context, body []byte) (models.User, Tokens, error) {
	plain, err := refreshTokenFrom(body)
	if err != nil {
		return models.User{}, Tokens{}, err
	}

	token, err := s.tokens.FindActiveRefreshToken(ctx, hashToken(plain))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.User{}, Tokens{}, response.New(response.Unauthorized, "Invalid refresh token.")
	case err != nil:
		return models.User{}, Tokens{}, response.Storage("find refresh token", err)
	}
	if s.now().After(token.ExpiresAt) {
		if err := s.tokens.RevokeRefreshToken(ctx, token.ID, nil); err != nil {
			s.log.Warn("expired refresh token not revoked", zap.Error(err))
		}
		return models.User{}, Tokens{}, response.New(response.Unauthorized, "Refresh token expired.")
	}

	user, err := s.users.FindUser(ctx, token.UserID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.User{}, Tokens{}, response.New(response.Unauthorized, "User login required.")
	case err != nil:
		return models.User{}, Tokens{}, response.Storage("find user", err)
	}
	if user.Status != models.StatusActive {
		return models.User{}, Tokens{}, response.New(response.Forbidden, "User account is inactive.")
	}

	issued, replacement, err := s.issueWithID(ctx, user)
	if err != nil {
		return models.User{}, Tokens{}, err
	}
	if err := s.tokens.RevokeRefreshToken(ctx, token.ID, &replacement); err != nil {
		return models.User{}, Tokens{}, response.Storage("revoke refresh token", err)
	}
	return user, issued, nil
}

// Logout revokes a refresh token and returns the email of its owner.
func (s *Service) Logout(ctx context.Context, body []byte) (string, error) {
	plain, err := refreshTokenFrom(body)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.FindActiveRefreshToken(ctx, hashToken(plain))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "", response.New(response.InvalidRequest, "No user was logged in.")
	case err != nil:
		return "", response.Storage("find refresh token", err)
	}
	if err := s.tokens.RevokeRefreshToken(ctx, token.ID, nil); err != nil {
		return "", response.Storage("revoke refresh token", err)
	}

	user, err := s.users.FindUser(ctx, token.UserID)
	if err != nil {
		return "", nil
	}
	return user.Email, nil
}

func (s *Service) issue(ctx context.Context, user models.User) (Tokens, error) {
	tokens, _, err := s.issueWithID(ctx, user)
	return tokens, err
}

func (s *Service) issueWithID(ctx context.Context, user models.User) (Tokens, primitive.ObjectID, error) {
	now := s.now()
	access, err := issueAccessToken(user, s.secret, now, s.accessTTL)
	if err != nil {
		return Tokens{}, primitive.NilObjectID, fmt.Errorf("sign access token: %w", err)
	}

	plain, err := generateRefreshString()
	if err != nil {
		return Tokens{}, primitive.NilObjectID, fmt.Errorf("generate refresh token: %w", err)
	}
	refresh := models.RefreshToken{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		TokenHash: hashToken(plain),
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}
	if err := s.tokens.InsertRefreshToken(ctx, &refresh); err != nil {
		return Tokens{}, primitive.NilObjectID, response.Storage("insert refresh token", err)
	}

	return Tokens{
		AccessToken:  access,
		RefreshToken: plain,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, refresh.ID, nil
}

func refreshTokenFrom(body []byte) (string, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return "", err
	}
	if !allStrings(fields, "refreshToken") {
		return "", response.New(response.InputError, refreshFormat)
	}
	plain := strings.TrimSpace(fields["refreshToken"].(string))
	if plain == "" {
		return "", response.New(response.InputError, refreshFormat)
	}
	return plain, nil
}

// decodeObject parses a JSON object body. Anything else is an InputError.
func decodeObject(body []byte) (map[string]interface{}, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return map[string]interface{}{}, nil
	}
	var root interface{}
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, response.FromDecode(err)
	}
	fields, ok := root.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, nil
	}
	return fields, nil
}

func allStrings(fields map[string]interface{}, names ...string) bool {
	for _, name := range names {
		if _, ok := fields[name].(string); !ok {
			return false
		}
	}
	return true
}
