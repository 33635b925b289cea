package utils

import (
	"errors" // Error values
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrInvalidToken is returned for any token that fails verification
var ErrInvalidToken = errors.New("invalid token")

// JWT Claims
type Claims struct {
	UserID               uint `json:"id"` // Custom claim for user ID
	jwt.RegisteredClaims                  // Standard JWT claims
}

// JWTSigner signs and verifies HS256 bearer tokens. It holds no mutable state.
type JWTSigner struct {
	secret []byte           // HMAC secret
	ttl    time.Duration    // Token lifetime
	now    func() time.Time // Clock, replaceable in tests
}

// NewJWTSigner creates a signer with the given secret and token lifetime
func NewJWTSigner(secret string, ttl time.Duration) *JWTSigner {
	return &JWTSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of the signer that reads time from now
func (s *JWTSigner) WithClock(now func() time.Time) *JWTSigner {
	cp := *s
	cp.now = now
	return &cp
}

// Sign creates a JWT token for a given user ID
func (s *JWTSigner) Sign(userID uint) (string, error) {
	issued := s.now()
	// Set token claims
	claims := Claims{
		UserID: userID, // Custom claim for user ID
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)), // Token expires after ttl
			IssuedAt:  jwt.NewNumericDate(issued),            // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(s.secret)                        // Sign the token with the secret
}

// Verify parses and validates a JWT token string and returns the user ID it was issued for
func (s *JWTSigner) Verify(tokenStr string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), // Reject alg switching
		jwt.WithExpirationRequired(),                                 // Tokens without exp are never valid
		jwt.WithTimeFunc(s.now),
	)
	// Check for parsing errors
	if err != nil {
		return 0, errors.Join(ErrInvalidToken, err)
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserID != 0 {
		return claims.UserID, nil
	}
	return 0, ErrInvalidToken
}
