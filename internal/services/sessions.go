package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/localnerve/foodtrack/internal/models"
	"github.com/localnerve/foodtrack/internal/types"
)

// UserFinder resolves a token subject to the live user record
type UserFinder interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// SessionService issues and checks stateless HS256 bearer tokens.
// The subject is the immutable user id, so a rename keeps tokens valid.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	users  UserFinder
	now    func() time.Time
}

// NewSessionService creates a session service. A zero ttl issues tokens without expiry.
func NewSessionService(secret string, ttl time.Duration, users UserFinder) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		ttl:    ttl,
		users:  users,
		now:    time.Now,
	}
}

// Issue signs a token for user
func (s *SessionService) Issue(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:  user.ID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", types.Storage("sign session token", err)
	}
	return token, nil
}

// Verify checks the signature and expiry of token and returns its user id
func (s *SessionService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", types.Auth(types.ReasonExpiredToken, "token has expired")
	case err != nil:
		return "", types.Auth(types.ReasonInvalidToken, "token is invalid")
	case claims.Subject == "":
		return "", types.Auth(types.ReasonInvalidToken, "token has no subject")
	}

	return claims.Subject, nil
}

// Authenticate verifies token and loads the user it was issued to.
// A deleted user makes the token invalid.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if types.IsKind(err, types.KindNotFound) {
		return nil, types.Auth(types.ReasonInvalidToken, "token user no longer exists")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
