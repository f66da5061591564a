package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	saltChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	hashPrefix = "scrypt:"
	keyLen     = 64
)

// scrypt cost parameters, matching werkzeug's defaults.
const (
	costN = 32768
	costR = 8
	costP = 1
)

func genSalt(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("salt length must be at least 1")
	}

	out := make([]byte, length)
	limit := 256 - (256 % len(saltChars))
	for i := 0; i < length; i++ {
		for {
			var b [1]byte
			if _, err := rand.Read(b[:]); err != nil {
				return "", fmt.Errorf("rand: %w", err)
			}
			if v := int(b[0]); v < limit {
				out[i] = saltChars[v%len(saltChars)]
				break
			}
		}
	}
	return string(out), nil
}

// passwordHash is the parsed form of "scrypt:N:r:p$salt$hexdigest".
type passwordHash struct {
	n, r, p int
	salt    string
	digest  []byte
}

func (h passwordHash) String() string {
	return fmt.Sprintf("%s%d:%d:%d$%s$%s", hashPrefix, h.n, h.r, h.p, h.salt, hex.EncodeToString(h.digest))
}

func (h passwordHash) derive(password string) ([]byte, error) {
	return scrypt.Key([]byte(password), []byte(h.salt), h.n, h.r, h.p, keyLen)
}

func parsePasswordHash(s string) (passwordHash, error) {
	var h passwordHash

	method, rest, ok := strings.Cut(s, "$")
	if !ok {
		return h, errors.New("missing salt")
	}
	salt, digestHex, ok := strings.Cut(rest, "$")
	if !ok {
		return h, errors.New("missing digest")
	}

	params, ok := strings.CutPrefix(method, hashPrefix)
	if !ok {
		return h, fmt.Errorf("unsupported method %q", method)
	}
	fields := strings.Split(params, ":")
	if len(fields) != 3 {
		return h, fmt.Errorf("want N:r:p, got %q", params)
	}
	costs := make([]int, 3)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v <= 0 {
			return h, fmt.Errorf("bad cost parameter %q", f)
		}
		costs[i] = v
	}
	if costs[0] <= 1 {
		return h, errors.New("N must be greater than 1")
	}

	digest, err := hex.DecodeString(digestHex)
	if err != nil {
		return h, fmt.Errorf("decode digest: %w", err)
	}

	h = passwordHash{n: costs[0], r: costs[1], p: costs[2], salt: salt, digest: digest}
	return h, nil
}

// GeneratePasswordHash returns "scrypt:N:r:p$salt$hexdigest".
func GeneratePasswordHash(password string) (string, error) {
	salt, err := genSalt(16)
	if err != nil {
		return "", err
	}

	h := passwordHash{n: costN, r: costR, p: costP, salt: salt}
	h.digest, err = h.derive(password)
	if err != nil {
		return "", err
	}
	return h.String(), nil
}

func IsPasswordHash(s string) bool {
	_, err := parsePasswordHash(s)
	return err == nil
}

func CheckPasswordHash(hash string, password string) bool {
	h, err := parsePasswordHash(hash)
	if err != nil || len(h.digest) != keyLen {
		return false
	}
	dk, err := h.derive(password)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(dk, h.digest) == 1
}

// MatchPassword compares a login attempt against the configured admin
// password, which may be stored in plain text or as a scrypt hash.
func MatchPassword(configured string, given string) bool {
	if IsPasswordHash(configured) {
		return CheckPasswordHash(configured, given)
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(given)) == 1
}
