package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"grocerystore/internal/models"
)

// Claims are the fields carried by an access token.
type Claims struct {
	UserID primitive.ObjectID
	Email  string
	Role   string
}

// Tokens is the pair returned by register, login and refresh.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

func issueAccessToken(user models.User, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID.Hex(),
		"email":  user.Email,
		"role":   user.Type,
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseAccessToken(raw string, secret []byte) (Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("unexpected claims type")
	}

	userIDValue, ok := claims["userId"].(string)
	if !ok || userIDValue == "" {
		return Claims{}, errors.New("userId claim missing")
	}
	userID, err := primitive.ObjectIDFromHex(userIDValue)
	if err != nil {
		return Claims{}, fmt.Errorf("invalid userId claim: %w", err)
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return Claims{UserID: userID, Email: email, Role: role}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateRefreshString() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
