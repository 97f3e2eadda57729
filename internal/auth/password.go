package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// AlgorithmPBKDF2 selects PBKDF2-HMAC-SHA256.
	AlgorithmPBKDF2 = "pbkdf2"
	// AlgorithmBcrypt selects bcrypt.
	AlgorithmBcrypt = "bcrypt"

	// MinPBKDF2Iterations is the lowest iteration count Hash will use.
	MinPBKDF2Iterations = 100_000
	// DefaultBcryptCost is used when no cost is configured.
	DefaultBcryptCost = 10

	pbkdf2Tag     = "pbkdf2_sha256"
	saltSize      = 16
	derivedKeyLen = sha256.Size

	// legacyIterations is the fixed work factor of "salt:digest" hashes.
	legacyIterations = 100_000
)

// ErrMalformedHash is returned when a stored hash cannot be decoded. It points
// at corrupt data or a programming error, never at a wrong password.
var ErrMalformedHash = errors.New("malformed password hash")

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, storedHash string) (bool, error)
}

// HasherConfig selects the algorithm and work factor for new hashes.
type HasherConfig struct {
	Algorithm  string
	Iterations int
	BcryptCost int
}

// Hasher produces self-describing password hashes. Verify accepts every
// format Hash has ever produced, whatever the current configuration:
//
//	pbkdf2_sha256$<iterations>$<salt hex>$<digest hex>
//	$2a$<cost>$...   (bcrypt)
//	<salt>:<digest hex>   (legacy, 100000 iterations)
type Hasher struct {
	algorithm  string
	iterations int
	bcryptCost int
}

var _ PasswordHasher = (*Hasher)(nil)

// NewHasher creates a hasher. Work factors below the safe minimum are raised.
func NewHasher(cfg HasherConfig) (*Hasher, error) {
	h := &Hasher{
		algorithm:  cfg.Algorithm,
		iterations: cfg.Iterations,
		bcryptCost: cfg.BcryptCost,
	}
	if h.algorithm == "" {
		h.algorithm = AlgorithmPBKDF2
	}
	if h.algorithm != AlgorithmPBKDF2 && h.algorithm != AlgorithmBcrypt {
		return nil, fmt.Errorf("unsupported password hash algorithm %q", cfg.Algorithm)
	}
	if h.iterations < MinPBKDF2Iterations {
		h.iterations = MinPBKDF2Iterations
	}
	if h.bcryptCost == 0 {
		h.bcryptCost = DefaultBcryptCost
	}
	if h.bcryptCost < bcrypt.MinCost || h.bcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", h.bcryptCost)
	}
	return h, nil
}

// Hash returns a salted hash of password using the configured algorithm.
func (h *Hasher) Hash(password string) (string, error) {
	if h.algorithm == AlgorithmBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", fmt.Errorf("bcrypt: %w", err)
		}
		return string(hashed), nil
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	digest := pbkdf2.Key([]byte(password), salt, h.iterations, derivedKeyLen, sha256.New)

	return strings.Join([]string{
		pbkdf2Tag,
		strconv.Itoa(h.iterations),
		hex.EncodeToString(salt),
		hex.EncodeToString(digest),
	}, "$"), nil
}

// Verify reports whether password matches storedHash.
func (h *Hasher) Verify(password, storedHash string) (bool, error) {
	switch {
	case strings.HasPrefix(storedHash, pbkdf2Tag+"$"):
		return verifyPBKDF2(password, storedHash)
	case strings.HasPrefix(storedHash, "$2"):
		err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password))
		if err == nil {
			return true, nil
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	case strings.Contains(storedHash, ":"):
		return verifyLegacy(password, storedHash)
	case len(storedHash) == hex.EncodedLen(sha256.Size):
		return verifyUnsaltedSHA256(password, storedHash)
	default:
		return false, ErrMalformedHash
	}
}

func verifyPBKDF2(password, storedHash string) (bool, error) {
	parts := strings.Split(storedHash, "$")
	if len(parts) != 4 {
		return false, ErrMalformedHash
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false, fmt.Errorf("%w: bad iteration count", ErrMalformedHash)
	}
	salt, err := hex.DecodeString(parts[2])
	if err != nil || len(salt) == 0 {
		return false, fmt.Errorf("%w: bad salt", ErrMalformedHash)
	}
	want, err := hex.DecodeString(parts[3])
	if err != nil || len(want) == 0 {
		return false, fmt.Errorf("%w: bad digest", ErrMalformedHash)
	}

	got := pbkdf2.Key([]byte(password), salt, iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// verifyLegacy checks hashes imported from the previous system, where the
// hex salt string itself (not its decoded bytes) was the PBKDF2 salt.
func verifyLegacy(password, storedHash string) (bool, error) {
	salt, digestHex, _ := strings.Cut(storedHash, ":")
	if salt == "" || strings.Contains(digestHex, ":") {
		return false, ErrMalformedHash
	}
	want, err := hex.DecodeString(digestHex)
	if err != nil || len(want) == 0 {
		return false, fmt.Errorf("%w: bad digest", ErrMalformedHash)
	}

	got := pbkdf2.Key([]byte(password), []byte(salt), legacyIterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// verifyUnsaltedSHA256 checks bare hex sha256 digests imported from the
// earliest records.
func verifyUnsaltedSHA256(password, storedHash string) (bool, error) {
	want, err := hex.DecodeString(storedHash)
	if err != nil {
		return false, fmt.Errorf("%w: bad digest", ErrMalformedHash)
	}
	got := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare(got[:], want) == 1, nil
}
