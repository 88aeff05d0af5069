package test

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random alphanumeric string of length
// within [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + randomIntn(maxLen-minLen+1)
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = alphanumeric[randomIntn(len(alphanumeric))]
	}
	return string(buf)
}

// RandomEmail returns a lowercase address on example.com.
func RandomEmail() string {
	return strings.ToLower(RandomASCIIString(6, 12)) + "@example.com"
}

// RandomPrice returns a price in [1, 10000) rounded to cents.
func RandomPrice() float64 {
	return float64(100+randomIntn(999900)) / 100
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
