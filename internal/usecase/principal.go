package usecase

import (
	"save-serve/internal/domain/user"
	"save-serve/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID uuid.UUID
	Role   user.Role
}

type Authenticator interface {
	Authenticate(token string) (Principal, error)
}

type jwtAuthenticator struct {
	jwtService *jwt.Service
}

func NewAuthenticator(jwtService *jwt.Service) Authenticator {
	return &jwtAuthenticator{jwtService: jwtService}
}

func (a *jwtAuthenticator) Authenticate(token string) (Principal, error) {
	claims, err := a.jwtService.ValidateToken(token)
	if err != nil {
		return Principal{}, err
	}
	id, err := claims.UserID()
	if err != nil {
		return Principal{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return Principal{}, err
	}
	return Principal{UserID: id, Role: role}, nil
}

func (p Principal) IsAdmin() bool { return p.Role.IsAdmin() }
