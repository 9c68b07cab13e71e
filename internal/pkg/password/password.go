package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. Encoded into every hash so they can be raised later
// without invalidating existing credentials.
const (
	defaultN = 1 << 15
	defaultR = 8
	defaultP = 1
	keyLen   = 32
	saltLen  = 16
)

var ErrMismatch = errors.New("password does not match")

// Hash derives a scrypt key from the password and returns a
// self-describing string: scrypt$N$r$p$salt$key (salt and key base64).
func Hash(plain string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key, err := scrypt.Key([]byte(plain), salt, defaultN, defaultR, defaultP, keyLen)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("scrypt$%d$%d$%d$%s$%s",
		defaultN, defaultR, defaultP,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify re-derives the key with the parameters embedded in the stored
// hash and compares in constant time. Returns ErrMismatch on a wrong
// password and a plain error on a malformed hash.
func Verify(stored, plain string) error {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 || parts[0] != "scrypt" {
		return errors.New("malformed password hash")
	}

	var n, r, p int
	if _, err := fmt.Sscanf(parts[1]+" "+parts[2]+" "+parts[3], "%d %d %d", &n, &r, &p); err != nil {
		return errors.New("malformed password hash")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return errors.New("malformed password hash")
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return errors.New("malformed password hash")
	}

	got, err := scrypt.Key([]byte(plain), salt, n, r, p, len(want))
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}
