package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"unimart/internal/domain"
	"unimart/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
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

// CurrentUserID resolves the seller behind a session; publishing
// requires a non-empty id.
func (s *AuthService) CurrentUserID(sid string) (string, error) {
	if sid == "" {
		return "", ErrAuthRequired
	}
	u, err := s.Users.SessionUser(sid)
	if err != nil || u == nil {
		return "", ErrAuthRequired
	}
	return u.ID, nil
}
