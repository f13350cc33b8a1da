package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the bot front end and resolves the admin policy.
// The front end exchanges its client credentials for a short-lived JWT and
// forwards end-user identities with each request; admin identities come from
// configuration.
type AuthService struct {
	jwtSecret        []byte
	tokenDurat       time.Duration // Duration for which JWT is valid
	clientID         string
	clientSecretHash []byte
	admins           map[string]struct{}
}

// NewAuthService creates a new AuthService. clientSecretHash is the bcrypt
// hash of the front end's shared secret.
func NewAuthService(jwtSecret, clientID, clientSecretHash string, adminIDs []string) *AuthService {
	admins := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &AuthService{
		jwtSecret:        []byte(jwtSecret),
		tokenDurat:       24 * time.Hour, // Token valid for 24 hours
		clientID:         clientID,
		clientSecretHash: []byte(clientSecretHash),
		admins:           admins,
	}
}

// IssueToken authenticates the front-end client and returns a JWT.
func (s *AuthService) IssueToken(clientID, clientSecret string) (string, error) {
	if clientID != s.clientID {
		// Do not reveal whether the client ID or the secret was wrong
		return "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(s.clientSecretHash, []byte(clientSecret)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"client_id": clientID,
		"exp":       time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":       time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// IsAdmin reports whether the given end-user identity is a configured admin.
func (s *AuthService) IsAdmin(userID string) bool {
	_, ok := s.admins[userID]
	return ok
}

// ParseAdminList splits a comma-separated ADMIN_IDS value into identities,
// skipping blank entries.
func ParseAdminList(raw string) []string {
	var admins []string
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		admins = append(admins, trimmed)
	}
	return admins
}
