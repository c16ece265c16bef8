package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	KindUser    = "user"
	KindCompany = "company"
)

var ErrInvalidToken = errors.New("invalid token")

// Service signs and verifies HS256 tokens. Each principal kind has its own lifetime.
type Service struct {
	secret []byte
	ttl    map[string]time.Duration
	now    func() time.Time
}

type Claims struct {
	SubjectID int64  `json:"sid"`
	Kind      string `json:"kind"`
	jwtlib.RegisteredClaims
}

func New(secret string, userTTL, companyTTL time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl: map[string]time.Duration{
			KindUser:    userTTL,
			KindCompany: companyTTL,
		},
		now: time.Now,
	}
}

func (s *Service) GenerateToken(subjectID int64, kind string) (string, error) {
	ttl, ok := s.ttl[kind]
	if !ok {
		return "", fmt.Errorf("unknown token kind %q", kind)
	}

	now := s.now()
	claims := Claims{
		SubjectID: subjectID,
		Kind:      kind,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwtlib.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.SubjectID <= 0 {
		return nil, ErrInvalidToken
	}
	if claims.Kind != KindUser && claims.Kind != KindCompany {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
