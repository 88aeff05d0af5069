package auth

import (
	"errors"
	"time"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Strategy issues and verifies bearer tokens carrying the caller identity.
type Strategy interface {
	IssueToken(identity model.Identity) (string, error)
	ParseToken(token string) (model.Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	// Now overrides the clock, used by tests.
	Now func() time.Time
}
