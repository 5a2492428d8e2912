package auth

import "golang.org/x/crypto/bcrypt"

// Hasher wraps bcrypt with a fixed application-wide cost. Each Hash call
// salts itself, so two digests of the same plaintext never match.
type Hasher struct {
	cost int
}

func NewHasher(cost int) Hasher {
	return Hasher{cost: cost}
}

func (h Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. bcrypt's comparison is
// constant-time with respect to the digest.
func (h Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
