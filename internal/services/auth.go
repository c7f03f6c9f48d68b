package services

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campushq/course-assistant-backend/internal/platform/apierr"
	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/requestdata"
)

// AuthService resolves bearer tokens minted by the external identity
// provider. Tokens are HS256 JWTs signed with a shared secret; the subject
// claim is the user id and the role claim carries professor/student.
type AuthService interface {
	ResolveToken(ctx context.Context, tokenString string) (*requestdata.RequestData, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	log       *logger.Logger
	jwtSecret []byte
}

func NewAuthService(log *logger.Logger, jwtSecret string) AuthService {
	return &authService{
		log:       log.With("service", "AuthService"),
		jwtSecret: []byte(jwtSecret),
	}
}

type identityClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) ResolveToken(ctx context.Context, tokenString string) (*requestdata.RequestData, error) {
	if tokenString == "" {
		return nil, apierr.Unauthorized("missing_token", fmt.Errorf("missing or invalid token"))
	}

	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apierr.Unauthorized("invalid_token", fmt.Errorf("invalid token"))
	}
	if claims.Subject == "" {
		return nil, apierr.Unauthorized("invalid_token", fmt.Errorf("token has no subject"))
	}

	return &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      claims.Subject,
		Role:        claims.Role,
	}, nil
}

func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	rd, err := s.ResolveToken(ctx, tokenString)
	if err != nil {
		return ctx, err
	}
	return requestdata.WithRequestData(ctx, rd), nil
}
