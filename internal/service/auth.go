package service

import (
	"context"
	"errors"
	"strings"
	"user_auth/internal/domain"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordCost     = 10 // bcrypt work factor for stored password hashes
	MaxPasswordBytes = 72 // bcrypt refuses longer inputs
)

// dummyHash is compared against when the username does not exist so that
// both login failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-user-password"), PasswordCost)

// AuthResult is returned by a successful register or login
type AuthResult struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// AuthService verifies credentials and issues bearer tokens
type AuthService struct {
	users    UserStore
	tokens   TokenSigner
	validate *validator.Validate
}

// NewAuthService creates an AuthService over the given credential store and signer
func NewAuthService(users UserStore, tokens TokenSigner) *AuthService {
	return &AuthService{users: users, tokens: tokens, validate: validator.New()}
}

// Register creates a new user and returns a token bound to it. The username is
// checked before the email, so a request colliding on both reports the username.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return nil, domain.Validation("Username is required")
	}
	if err := s.validate.Var(username, "max=255"); err != nil {
		return nil, domain.Validation("Username must be at most 255 characters")
	}
	if password == "" {
		return nil, domain.Validation("Password is required")
	}
	if len(password) > MaxPasswordBytes {
		return nil, domain.Validation("Password must be at most 72 bytes")
	}
	if err := s.validate.Var(email, "required,email,max=255"); err != nil {
		return nil, domain.Validation("Invalid email address")
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.Server("Server error during registration", err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameExists
	}
	existing, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.Server("Server error during registration", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return nil, domain.Server("Server error during registration", err)
	}
	user := &domain.User{Username: username, Email: email, Password: string(hash)}
	// The unique indexes decide races the pre-checks above cannot see
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameExists) || errors.Is(err, domain.ErrEmailExists) {
			return nil, err
		}
		if domain.KindOf(err) == domain.KindValidation {
			return nil, err // Column width enforced by the store
		}
		return nil, domain.Server("Server error during registration", err)
	}

	return s.issue(user, "Server error during registration")
}

// Login checks username and password. Unknown usernames and wrong passwords
// fail with the same domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || len(password) > MaxPasswordBytes {
		return nil, domain.ErrInvalidCredentials // No stored hash covers a longer password
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.Server("Server error during login", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user, "Server error during login")
}

// VerifyToken returns the user ID a token was issued for. Tokens stay valid
// until they expire; there is no revocation.
func (s *AuthService) VerifyToken(token string) (uint, error) {
	if token == "" {
		return 0, domain.ErrInvalidToken
	}
	id, err := s.tokens.Verify(token)
	if err != nil {
		return 0, domain.ErrInvalidToken
	}
	return id, nil
}

func (s *AuthService) issue(user *domain.User, failMsg string) (*AuthResult, error) {
	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return nil, domain.Server(failMsg, err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}
