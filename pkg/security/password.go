package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/ownshop-backend/pkg/config"
	"golang.org/x/crypto/argon2"
)

// ErrInvalidHash signals a malformed Argon2id hash string.
var ErrInvalidHash = errors.New("invalid argon2id hash")

const hashPrefix = "$argon2id$v=19$"

var b64 = base64.RawStdEncoding

// argonHash is the decoded form of "$argon2id$v=19$m=..,t=..,p=..$salt$key".
type argonHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func (h argonHash) String() string {
	return fmt.Sprintf("%sm=%d,t=%d,p=%d$%s$%s", hashPrefix, h.memory, h.time, h.threads,
		b64.EncodeToString(h.salt), b64.EncodeToString(h.key))
}

func (h argonHash) derive(password string) []byte {
	return argon2.IDKey([]byte(password), h.salt, h.time, h.memory, h.threads, uint32(len(h.key)))
}

// HashPassword returns an encoded Argon2id hash of password. Out-of-range
// parameters in cfg are clamped rather than rejected.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}

	h := argonHash{
		memory:  uint32(clamp(cfg.ArgonMemoryKB, 8, 512*1024)),
		time:    uint32(clamp(cfg.ArgonTime, 1, 10)),
		threads: uint8(clamp(cfg.ArgonParallelism, 1, 255)),
		salt:    make([]byte, clamp(cfg.ArgonSaltLen, 8, 64)),
		key:     make([]byte, clamp(cfg.ArgonKeyLen, 16, 64)),
	}
	if _, err := rand.Read(h.salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	h.key = h.derive(password)
	return h.String(), nil
}

// VerifyPassword reports whether password matches the encoded hash.
// A nil error with false means the hash was well formed but did not match.
func VerifyPassword(password, encoded string) (bool, error) {
	h, err := parseHash(encoded)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(h.key, h.derive(password)) == 1, nil
}

// IsEmptyHash reports whether an account has never been assigned a password hash.
func IsEmptyHash(encoded string) bool {
	return strings.TrimSpace(encoded) == ""
}

func parseHash(encoded string) (argonHash, error) {
	rest, ok := strings.CutPrefix(encoded, hashPrefix)
	if !ok {
		return argonHash{}, ErrInvalidHash
	}
	parts := strings.Split(rest, "$")
	if len(parts) != 3 {
		return argonHash{}, ErrInvalidHash
	}

	var h argonHash
	const params = "m=%d,t=%d,p=%d"
	if _, err := fmt.Sscanf(parts[0], params, &h.memory, &h.time, &h.threads); err != nil ||
		fmt.Sprintf(params, h.memory, h.time, h.threads) != parts[0] || h.time == 0 || h.threads == 0 {
		return argonHash{}, ErrInvalidHash
	}

	var err error
	if h.salt, err = b64.DecodeString(parts[1]); err != nil || len(h.salt) == 0 {
		return argonHash{}, ErrInvalidHash
	}
	if h.key, err = b64.DecodeString(parts[2]); err != nil || len(h.key) == 0 {
		return argonHash{}, ErrInvalidHash
	}
	return h, nil
}

func clamp(value, lo, hi int) int {
	return max(lo, min(value, hi))
}
