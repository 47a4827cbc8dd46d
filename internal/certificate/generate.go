package certificate

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Fields is the canonical input of a certificate hash. The digest is an
// auditable content fingerprint stored on-chain, not a secret.
type Fields struct {
	ProductID uint64
	Type      string
	Verifier  string
	Result    string
	Notes     string
	Timestamp int64
}

// Generate produces a stable sha256 digest over a fixed-order serialization
// of the fields. Field order is fixed so the same logical input always yields
// the same hash.
func Generate(f Fields) string {
	canonical := strings.Join([]string{
		strconv.FormatUint(f.ProductID, 10),
		f.Type,
		f.Verifier,
		f.Result,
		f.Notes,
		strconv.FormatInt(f.Timestamp, 10),
	}, "|")

	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
