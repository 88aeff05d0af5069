package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

const tokenIssuer = "marketplace"

type claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTStrategy signs HS256 tokens with subject and role claims.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl, now: now}
}

// IssueToken generates a signed token for the identity.
func (s *JWTStrategy) IssueToken(identity model.Identity) (string, error) {
	if !identity.Authenticated() || !identity.Role.Valid() {
		return "", fmt.Errorf("issue token: incomplete identity")
	}
	issued := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates token and returns the encoded identity.
func (s *JWTStrategy) ParseToken(token string) (model.Identity, error) {
	var c claims
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	parsed, err := parser.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return model.Identity{}, ErrInvalidToken
	}
	if c.ExpiresAt == nil || !c.ExpiresAt.After(s.now()) {
		return model.Identity{}, ErrInvalidToken
	}
	if c.Subject == "" || !c.Role.Valid() {
		return model.Identity{}, ErrInvalidToken
	}
	return model.Identity{UserID: c.Subject, Role: c.Role}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
