package auth

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptHashLength = 60
	md5HexLength     = 32
	sha256HexLength  = 64

	schemeBcrypt    = "bcrypt"
	schemeMD5       = "md5"
	schemeSHA256    = "sha256"
	schemePlaintext = "plaintext"
)

// verifyPassword checks a candidate password against whichever hash
// format the stored value carries, dispatched on its length. The legacy
// md5 and sha256 rows predate the bcrypt migration and are kept working
// until they are rehashed. Plaintext rows only match when allowPlaintext
// is set. The matched scheme is reported so callers can flag legacy rows.
func verifyPassword(stored, candidate string, allowPlaintext bool) (bool, string) {
	switch len(stored) {
	case bcryptHashLength:
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil, schemeBcrypt
	case md5HexLength:
		sum := md5.Sum([]byte(candidate))
		return hexEqual(stored, sum[:]), schemeMD5
	case sha256HexLength:
		sum := sha256.Sum256([]byte(candidate))
		return hexEqual(stored, sum[:]), schemeSHA256
	default:
		if !allowPlaintext {
			return false, schemePlaintext
		}
		return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1, schemePlaintext
	}
}

func hexEqual(stored string, sum []byte) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(hex.EncodeToString(sum))) == 1
}
