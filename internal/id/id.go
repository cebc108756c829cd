package id

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID generates a URL-safe record identifier using UUIDv4 bytes encoded as
// base32. The identifier is 26 characters long, lowercase, and contains no
// padding.
func NewID() (string, error) {
	raw, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw[:])
	return strings.ToLower(encoded), nil
}

const sessionSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

const sessionSuffixLength = 7

// NewSessionID generates an identifier for one live broadcast session. It
// combines the current Unix-millisecond timestamp with a short random
// alphanumeric suffix so two sessions started within the same millisecond
// still receive distinct identifiers.
func NewSessionID() (string, error) {
	suffix, err := randomSuffix(sessionSuffixLength)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + suffix, nil
}

func randomSuffix(length int) (string, error) {
	max := big.NewInt(int64(len(sessionSuffixAlphabet)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		b.WriteByte(sessionSuffixAlphabet[n.Int64()])
	}
	return b.String(), nil
}
