package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 64
	minPasswordLength = 8
	maxPasswordLength = 128
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials covers both "unknown identifier" and "wrong
	// password" so login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrConflict           = errors.New("already exists")
)

// DuplicateError names the field that collided during registration. It
// unwraps to ErrConflict.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string { return e.Field + " already in use" }
func (e *DuplicateError) Unwrap() error { return ErrConflict }

// UserStore is the credential store consumed by AuthService. *db.Postgres
// implements it; tests inject an in-memory fake.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error
	DeleteUser(ctx context.Context, userID int64) error
}

// Clock reports the current time. Injected so expiry-boundary tests are
// deterministic.
type Clock func() time.Time

type AuthService struct {
	store     UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
	issuer    string
	now       Clock
	log       zerolog.Logger
}

type AuthOption func(*AuthService)

func WithClock(now Clock) AuthOption {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(store UserStore, cfg config.AuthConfig, log zerolog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		store:     store,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  cfg.TokenTTL,
		issuer:    cfg.Issuer,
		now:       time.Now,
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type authClaims struct {
	jwt.RegisteredClaims
}

// Register creates an account and immediately issues a token for it.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, string, int64, error) {
	if err := validateRegistration(username, email, password); err != nil {
		return nil, "", 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", 0, err
	}

	user, err := s.store.CreateUser(ctx, username, email, string(hash))
	if err != nil {
		if field, ok := db.ConflictField(err); ok {
			if field == "" {
				return nil, "", 0, ErrConflict
			}
			return nil, "", 0, &DuplicateError{Field: field}
		}
		return nil, "", 0, err
	}

	token, expiresIn, err := s.IssueToken(user)
	if err != nil {
		return nil, "", 0, err
	}
	return user, token, expiresIn, nil
}

// Login verifies the credentials and issues a fresh token.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*model.User, string, int64, error) {
	user, err := s.Verify(ctx, identifier, password)
	if err != nil {
		return nil, "", 0, err
	}

	token, expiresIn, err := s.IssueToken(user)
	if err != nil {
		return nil, "", 0, err
	}
	return user, token, expiresIn, nil
}

// Verify checks a presented identifier+password pair against the store. An
// identifier containing "@" is looked up as an email (case-insensitive),
// anything else as a username (case-sensitive).
func (s *AuthService) Verify(ctx context.Context, identifier, password string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var (
		user *model.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.store.GetUserByEmail(ctx, identifier)
	} else {
		user, err = s.store.GetUserByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken mints a signed bearer token for an already-verified account and
// returns it with its lifetime in seconds. The jti claim keeps two tokens
// issued within the same second distinct.
func (s *AuthService) IssueToken(user *model.User) (string, int64, error) {
	now := s.now()
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.tokenTTL.Seconds()), nil
}

// ValidateToken checks signature, issuer and expiry, and returns the subject
// account id. Every failure maps to ErrUnauthorized on the wire; the
// sub-reason is only logged.
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrUnauthorized
			}
			return s.jwtSecret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		s.logTokenFailure(err)
		return 0, ErrUnauthorized
	}
	if !token.Valid {
		return 0, ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrUnauthorized
	}
	return userID, nil
}

// Authenticate resolves a bearer token all the way to a live account.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*model.AuthUser, error) {
	userID, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.log.Warn().Int64("user_id", userID).Msg("token subject no longer exists")
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return &model.AuthUser{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// ChangePassword replaces the account's secret hash after re-checking the
// current password.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength || len(newPassword) > maxPasswordLength {
		return ErrInvalidInput
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.store.UpdateUserPassword(ctx, userID, string(hash))
}

// DeleteAccount removes the account. Owned projects and tasks go with it via
// the schema's cascade; outstanding tokens die at the middleware's re-resolve.
func (s *AuthService) DeleteAccount(ctx context.Context, userID int64) error {
	err := s.store.DeleteUser(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return ErrUnauthorized
	}
	return err
}

func (s *AuthService) logTokenFailure(err error) {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		s.log.Warn().Msg("rejected malformed token")
	case errors.Is(err, jwt.ErrTokenExpired):
		s.log.Warn().Msg("rejected expired token")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		s.log.Warn().Msg("rejected token with invalid signature")
	default:
		s.log.Warn().Err(err).Msg("rejected token")
	}
}

func validateRegistration(username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidInput, minUsernameLength, maxUsernameLength)
	}
	// "@" disambiguates email from username at login time, so usernames
	// must never contain it.
	if strings.Contains(username, "@") {
		return fmt.Errorf("%w: username must not contain '@'", ErrInvalidInput)
	}
	if len(email) < 3 || len(email) > 254 || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be %d-%d characters", ErrInvalidInput, minPasswordLength, maxPasswordLength)
	}
	return nil
}
