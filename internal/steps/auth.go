package steps

import (
	"forge/internal/artifact"
	"forge/internal/config"
	"forge/internal/registry"
)

func emitUserModel(cfg *config.Config, w artifact.Writer) error {
	return emitAll(w, cfg, []file{
		{"internal/models/user.go", tmplUserModel},
		{"internal/store/users.go", tmplUserStore},
	})
}

func emitAuthCore(cfg *config.Config, w artifact.Writer) error {
	return emitAll(w, cfg, []file{
		{"internal/auth/password.go", tmplPassword},
		{"internal/auth/jwt.go", tmplJWT},
	})
}

// emitAuthRefresh self-gates on the refresh-token flag: the step is active
// whenever auth is enabled, but only complete auth (or an explicit opt-in)
// actually emits anything. The no-op shows up as skipped in the report.
func emitAuthRefresh(cfg *config.Config, w artifact.Writer) error {
	if !cfg.HasRefreshToken() {
		return registry.ErrSkipped
	}
	return emit(w, cfg, "internal/auth/refresh.go", tmplRefresh)
}

func emitAuthTokens(cfg *config.Config, w artifact.Writer) error {
	return emitAll(w, cfg, []file{
		{"internal/models/token.go", tmplTokenModel},
		{"internal/store/tokens.go", tmplTokenStore},
	})
}

func emitAuthEmail(cfg *config.Config, w artifact.Writer) error {
	return emitAll(w, cfg, []file{
		{"internal/email/service.go", tmplEmailService},
		{"internal/email/templates/verify.txt", tmplEmailVerify},
		{"internal/email/templates/reset.txt", tmplEmailReset},
	})
}

func emitRoutes(cfg *config.Config, w artifact.Writer) error {
	return emit(w, cfg, "internal/routes/routes.go", tmplRoutes)
}

const tmplUserModel = `package models

import "time"

// User is the account record backing authentication.
type User struct {
	ID        int64
	Email     string
	Password  string // bcrypt hash, never the plaintext
	CreatedAt time.Time
}
`

const tmplUserStore = `package store

import (
	"context"

	"{{.Name}}/internal/models"
	"{{.Name}}/internal/storage"
)

// Users persists account records.
type Users struct {
	db *storage.DB
}

// NewUsers creates a user store over the shared database handle.
func NewUsers(db *storage.DB) *Users {
	return &Users{db: db}
}

// ByEmail looks up a user by email address.
func (s *Users) ByEmail(ctx context.Context, email string) (*models.User, error) {
	// TODO(scaffold): replace with a real query once the schema settles.
	return nil, nil
}
`

const tmplPassword = `package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password for storage.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword compares a stored hash against a login attempt.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
`

const tmplJWT = `package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL bounds how long an access token stays valid.
const AccessTokenTTL = 15 * time.Minute

// IssueAccessToken signs a short-lived access token for the user.
func IssueAccessToken(secret string, userID int64) (string, error) {
	return issueWithTTL(secret, userID, AccessTokenTTL)
}

func issueWithTTL(secret string, userID int64, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
`

const tmplRefresh = `package auth

import "time"

// RefreshTokenTTL bounds how long a refresh token stays valid.
const RefreshTokenTTL = 30 * 24 * time.Hour

// IssueRefreshToken signs a long-lived refresh token for the user. Rotation
// happens on every use: the old token is revoked when a new pair is issued.
func IssueRefreshToken(secret string, userID int64) (string, error) {
	return issueWithTTL(secret, userID, RefreshTokenTTL)
}
`

const tmplTokenModel = `package models

import "time"

// TokenKind distinguishes the purposes a stored token can serve.
type TokenKind string

const (
	TokenRefresh       TokenKind = "refresh"
	TokenEmailVerify   TokenKind = "email_verify"
	TokenPasswordReset TokenKind = "password_reset"
)

// Token is a persisted, revocable token.
type Token struct {
	ID        int64
	UserID    int64
	Kind      TokenKind
	ExpiresAt time.Time
}
`

const tmplTokenStore = `package store

import (
	"context"

	"{{.Name}}/internal/models"
	"{{.Name}}/internal/storage"
)

// Tokens persists revocable tokens.
type Tokens struct {
	db *storage.DB
}

// NewTokens creates a token store over the shared database handle.
func NewTokens(db *storage.DB) *Tokens {
	return &Tokens{db: db}
}

// Revoke invalidates a stored token.
func (s *Tokens) Revoke(ctx context.Context, id int64) error {
	// TODO(scaffold): replace with a real delete once the schema settles.
	return nil
}

var _ = models.TokenRefresh
`

const tmplEmailService = `package email

import "fmt"

// Service sends transactional mail for verification and password reset.
type Service struct {
	host string
	port int
	from string
}

// NewService creates an SMTP-backed email service.
func NewService(host string, port int, from string) *Service {
	return &Service{host: host, port: port, from: from}
}

// SendVerification mails an address-verification link.
func (s *Service) SendVerification(to, link string) error {
	return s.send(to, "Verify your {{.Name}} account", fmt.Sprintf("Open %s to verify your address.", link))
}

// SendPasswordReset mails a password-reset link.
func (s *Service) SendPasswordReset(to, link string) error {
	return s.send(to, "Reset your {{.Name}} password", fmt.Sprintf("Open %s to choose a new password.", link))
}

func (s *Service) send(to, subject, body string) error {
	// TODO(scaffold): wire an SMTP client; the scaffold only logs.
	fmt.Printf("mail to=%s subject=%q\n", to, subject)
	_ = body
	return nil
}
`

const tmplEmailVerify = `Subject: Verify your {{.Name}} account

Open the link below to verify your email address:

    {{"{{.Link}}"}}
`

const tmplEmailReset = `Subject: Reset your {{.Name}} password

Open the link below to choose a new password:

    {{"{{.Link}}"}}
`

const tmplRoutes = `package routes

import (
	"net/http"

	"{{.Name}}/internal/settings"
	"{{.Name}}/internal/storage"
)

// Mount attaches the versioned API routes to the mux.
func Mount(mux *http.ServeMux, db *storage.DB, cfg settings.Settings) {
	mux.HandleFunc("POST /api/v1/auth/register", notImplemented)
	mux.HandleFunc("POST /api/v1/auth/login", notImplemented)
{{- if .RefreshToken}}
	mux.HandleFunc("POST /api/v1/auth/refresh", notImplemented)
{{- end}}
{{- if .CompleteAuth}}
	mux.HandleFunc("POST /api/v1/auth/verify-email", notImplemented)
	mux.HandleFunc("POST /api/v1/auth/reset-password", notImplemented)
{{- end}}
	mux.HandleFunc("GET /api/v1/users/me", notImplemented)

	_ = db
	_ = cfg
}

func notImplemented(rw http.ResponseWriter, _ *http.Request) {
	http.Error(rw, "not implemented", http.StatusNotImplemented)
}
`
