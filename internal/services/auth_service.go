package services

import (
	"errors"

	"lumiere/internal/domain"
	"lumiere/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

// CredentialVerifier decouples the login flow from where accounts live; the
// default implementation reads the users table, but a directory-backed
// verifier can be swapped in without touching call sites.
type CredentialVerifier interface {
	Verify(email, password string) (*domain.User, error)
}

type UserTableVerifier struct {
	Users *repos.UserRepo
}

func (v *UserTableVerifier) Verify(email, password string) (*domain.User, error) {
	u, err := v.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	return u, nil
}

type AuthService struct {
	Users    *repos.UserRepo
	Verifier CredentialVerifier
}

func NewAuthService(users *repos.UserRepo) *AuthService {
	return &AuthService{Users: users, Verifier: &UserTableVerifier{Users: users}}
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Verifier.Verify(email, password)
	if err != nil {
		return nil, err
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
