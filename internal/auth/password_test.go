package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

func newTestHasher(t *testing.T, algorithm string) *Hasher {
	t.Helper()
	h, err := NewHasher(HasherConfig{Algorithm: algorithm, BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	return h
}

func TestNewHasher(t *testing.T) {
	tests := []struct {
		name    string
		cfg     HasherConfig
		wantErr bool
		wantIt  int
	}{
		{name: "defaults to pbkdf2", cfg: HasherConfig{}, wantIt: MinPBKDF2Iterations},
		{name: "raises low iteration count", cfg: HasherConfig{Algorithm: AlgorithmPBKDF2, Iterations: 10}, wantIt: MinPBKDF2Iterations},
		{name: "keeps higher iteration count", cfg: HasherConfig{Iterations: 200_000}, wantIt: 200_000},
		{name: "unknown algorithm", cfg: HasherConfig{Algorithm: "md5"}, wantErr: true},
		{name: "bcrypt cost out of range", cfg: HasherConfig{Algorithm: AlgorithmBcrypt, BcryptCost: 64}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHasher(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIt, h.iterations)
		})
	}
}

func TestHasher_PBKDF2RoundTrip(t *testing.T) {
	h := newTestHasher(t, AlgorithmPBKDF2)

	hashed, err := h.Hash("pw123456")
	require.NoError(t, err)

	parts := strings.Split(hashed, "$")
	require.Len(t, parts, 4)
	assert.Equal(t, "pbkdf2_sha256", parts[0])
	assert.Equal(t, "100000", parts[1])
	assert.Len(t, parts[2], saltSize*2)
	assert.Len(t, parts[3], derivedKeyLen*2)
	assert.NotContains(t, hashed, "pw123456")

	ok, err := h.Verify("pw123456", hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("pw1234567", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_SaltsDiffer(t *testing.T) {
	h := newTestHasher(t, AlgorithmPBKDF2)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHasher_BcryptRoundTrip(t *testing.T) {
	h := newTestHasher(t, AlgorithmBcrypt)

	hashed, err := h.Hash("pw123456")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$2"))

	ok, err := h.Verify("pw123456", hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_VerifiesAcrossAlgorithms(t *testing.T) {
	pb := newTestHasher(t, AlgorithmPBKDF2)
	bc := newTestHasher(t, AlgorithmBcrypt)

	fromBcrypt, err := bc.Hash("secret")
	require.NoError(t, err)

	ok, err := pb.Verify("secret", fromBcrypt)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasher_VerifyLegacyFormat(t *testing.T) {
	salt := "0123456789abcdef0123456789abcdef"
	digest := pbkdf2.Key([]byte("pw123456"), []byte(salt), 100_000, 32, sha256.New)
	stored := salt + ":" + hex.EncodeToString(digest)

	h := newTestHasher(t, AlgorithmPBKDF2)

	ok, err := h.Verify("pw123456", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("nope", stored)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_VerifyUnsaltedSHA256(t *testing.T) {
	sum := sha256.Sum256([]byte("password123"))
	stored := hex.EncodeToString(sum[:])

	h := newTestHasher(t, AlgorithmBcrypt)

	ok, err := h.Verify("password123", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("password124", stored)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.Verify("password123", strings.ToUpper(stored))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasher_VerifyMalformed(t *testing.T) {
	h := newTestHasher(t, AlgorithmPBKDF2)

	tests := []struct {
		name   string
		stored string
	}{
		{name: "empty", stored: ""},
		{name: "plain text", stored: "pw123456"},
		{name: "pbkdf2 missing parts", stored: "pbkdf2_sha256$100000$abcd"},
		{name: "pbkdf2 bad iterations", stored: "pbkdf2_sha256$lots$abcd$abcd"},
		{name: "pbkdf2 bad salt", stored: "pbkdf2_sha256$100000$zz$abcd"},
		{name: "legacy bad digest", stored: "salt:not-hex"},
		{name: "legacy empty salt", stored: ":abcd"},
		{name: "bcrypt truncated", stored: "$2a$10$short"},
		{name: "sha256 not hex", stored: strings.Repeat("z", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("pw123456", tt.stored)
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrMalformedHash)
		})
	}
}
