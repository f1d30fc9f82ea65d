package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// DefaultSessionTokenExpiry is the duration for which session tokens are valid.
	DefaultSessionTokenExpiry = 7 * 24 * time.Hour
	// DefaultResetTokenExpiry is the duration for which password reset tokens are valid.
	DefaultResetTokenExpiry = time.Hour

	resetPurpose = "password_reset"
)

// SessionClaims are the identity claims carried by a session token.
type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// resetClaims carry only the email; a reset token proves nothing beyond
// the address it was issued for.
type resetClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies session and password reset tokens.
type JWTService struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

// NewJWTService creates a JWT service with the given secret and default TTLs.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		sessionTTL: DefaultSessionTokenExpiry,
		resetTTL:   DefaultResetTokenExpiry,
	}
}

// NewJWTServiceWithTTL creates a JWT service with explicit token lifetimes.
func NewJWTServiceWithTTL(secret string, sessionTTL, resetTTL time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
	}
}

// GenerateSessionToken signs a session token for the user.
func (s *JWTService) GenerateSessionToken(userID uint, email, role string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateSessionToken verifies signature and expiry and returns the claims.
// Any failure yields an error and no partial claims.
func (s *JWTService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, s.keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	// Reset tokens carry no user id; they must not pass as sessions.
	if claims.UserID == 0 {
		return nil, errors.New("not a session token")
	}
	return claims, nil
}

// GenerateResetToken signs a narrow, single-purpose token carrying only
// the email.
func (s *JWTService) GenerateResetToken(email string) (string, error) {
	now := time.Now()
	claims := &resetClaims{
		Email:   email,
		Purpose: resetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyResetToken validates a reset token and returns the email it was
// issued for. Session tokens are rejected here: a valid session must not
// double as a password reset proof.
func (s *JWTService) VerifyResetToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &resetClaims{}, s.keyFunc)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*resetClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Purpose != resetPurpose || claims.Email == "" {
		return "", errors.New("not a reset token")
	}
	return claims.Email, nil
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return s.secret, nil
}
