package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"golang.org/x/crypto/scrypt"

	"github.com/Hen-Heang/h-market/domain"
)

// scrypt parameters, interoperable with the stored hashes: 64-byte keys
// derived with the default cost settings.
const (
	scryptN = 1 << 14
	scryptR = 8
	scryptP = 1
	keyLen  = 64

	saltBytes = 16
)

// Scrypt implements domain.SecretHasher with scrypt key derivation.
type Scrypt struct{}

var _ domain.SecretHasher = (*Scrypt)(nil)

// New probes the secure random source once so that an unusable source is a
// startup failure rather than a per-call error.
func New() (*Scrypt, error) {
	var probe [1]byte
	if _, err := rand.Read(probe[:]); err != nil {
		return nil, fmt.Errorf("secure random source unavailable: %w", err)
	}
	return &Scrypt{}, nil
}

// Derive computes scrypt(secret, salt) and returns it hex encoded.
func (s *Scrypt) Derive(secret, salt string) string {
	key, err := scrypt.Key([]byte(secret), []byte(salt), scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		// scrypt.Key only fails on invalid cost parameters, which are
		// compile-time constants here.
		panic(err)
	}
	return hex.EncodeToString(key)
}

// Verify recomputes the derivation and compares it with expectedHex in
// constant time. Undecodable or differently sized expectations yield false.
func (s *Scrypt) Verify(secret, salt, expectedHex string) bool {
	expected, err := hex.DecodeString(expectedHex)
	if err != nil {
		return false
	}
	actual, err := hex.DecodeString(s.Derive(secret, salt))
	if err != nil {
		return false
	}
	if len(actual) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare(actual, expected) == 1
}

// NewSalt returns 16 cryptographically random bytes, hex encoded.
func (s *Scrypt) NewSalt() string {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		panic(fmt.Errorf("secure random source unavailable: %w", err))
	}
	return hex.EncodeToString(salt)
}

// NewID returns a random UUID string.
func (s *Scrypt) NewID() string {
	return uuid.NewString()
}

// GenerateOTP returns a decimal string of exactly length digits, drawn
// uniformly from [0, 10^length) and left-padded with zeros.
func (s *Scrypt) GenerateOTP(length int) string {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		panic(fmt.Errorf("secure random source unavailable: %w", err))
	}
	return fmt.Sprintf("%0*d", length, n)
}
