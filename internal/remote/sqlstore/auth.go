package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/rsekulic/videoteka-v1/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt cost for new admin passwords
var passwordCost = bcrypt.DefaultCost

// EnsureAdmin creates the admin account or replaces its password
func (s *Store) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	query := s.rebind(`INSERT INTO admins (email, password_hash) VALUES (?, ?)
		ON CONFLICT (email) DO UPDATE SET password_hash = excluded.password_hash`)
	if _, err := s.db.ExecContext(ctx, query, email, string(hash)); err != nil {
		return unreachable("save admin", err)
	}
	s.logger.Info("admin account saved", "email", email)
	return nil
}

// SignIn checks the credentials against the admins table
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)

	var hash string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT password_hash FROM admins WHERE email = ?`), email).Scan(&hash)
	if err != nil {
		if isNoRows(err) {
			s.logger.Warn("sign in rejected", "email", email, "reason", "unknown account")
			return domain.ErrAuthFailed
		}
		return unreachable("sign in", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		s.logger.Warn("sign in rejected", "email", email, "reason", "password mismatch")
		return domain.ErrAuthFailed
	}

	s.auth.Set(email)
	s.logger.Info("signed in", "email", email)
	return nil
}

// SignOut ends the session
func (s *Store) SignOut(ctx context.Context) error {
	s.auth.Set("")
	s.logger.Info("signed out")
	return nil
}

// Authenticated reports whether an admin is signed in
func (s *Store) Authenticated() bool {
	return s.auth.Authenticated()
}

// OnAuthStateChange registers fn for sign-in and sign-out events
func (s *Store) OnAuthStateChange(fn func(authenticated bool)) func() {
	return s.auth.Subscribe(fn)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
