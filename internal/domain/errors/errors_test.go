package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"unauthorized", ErrUnauthorized},
		{"forbidden", ErrForbidden},
		{"not found", ErrNotFound},
		{"invalid request", ErrInvalidRequest},
		{"invalid transition", ErrInvalidTransition},
		{"already exists", ErrAlreadyExists},
		{"invalid credentials", ErrInvalidCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("op: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match %v", tc.err)
			}
			for _, other := range cases {
				if other.err != tc.err && stdErrors.Is(tc.err, other.err) {
					t.Fatalf("%v must not match %v", tc.err, other.err)
				}
			}
		})
	}
}
