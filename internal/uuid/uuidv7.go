package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	googleuuid "github.com/google/uuid"
)

// spendingNamespace scopes derived spending ids so they never collide with
// ids minted for anything else under the SHA-1 scheme.
var spendingNamespace = googleuuid.NewSHA1(googleuuid.NameSpaceURL, []byte("gagyebu:spending"))

// New generates a new UUIDv7 based on the current timestamp.
// UUIDv7 is time-ordered and suitable for use as database primary keys.
//
// Format (RFC 9562):
// - 48 bits: Unix timestamp in milliseconds
// - 4 bits: version (0111 = 7)
// - 12 bits: random data
// - 2 bits: variant (10)
// - 62 bits: random data
func New() string {
	var id [16]byte

	timestamp := uint64(time.Now().UnixMilli())
	binary.BigEndian.PutUint64(id[0:8], timestamp<<16)

	if _, err := rand.Read(id[6:]); err != nil {
		return googleuuid.New().String()
	}

	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return formatUUID(id)
}

// Derive returns a deterministic name-based (SHA-1, version 5) UUID for the
// given parts. Equal parts always yield the same id.
func Derive(parts ...string) string {
	name := strings.Join(parts, "\x1f")
	return googleuuid.NewSHA1(spendingNamespace, []byte(name)).String()
}

// SpendingID derives the stable key of a synced record. An absent instant is
// encoded distinctly from every real instant, including the Unix epoch.
func SpendingID(ownerEmail, role string, sourceID int64, instant *time.Time, amount int64) string {
	at := "none"
	if instant != nil {
		at = strconv.FormatInt(instant.UTC().UnixNano(), 10)
	}
	return Derive(
		strings.ToLower(strings.TrimSpace(ownerEmail)),
		role,
		strconv.FormatInt(sourceID, 10),
		at,
		strconv.FormatInt(amount, 10),
	)
}

func formatUUID(id [16]byte) string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(id[0:4]),
		binary.BigEndian.Uint16(id[4:6]),
		binary.BigEndian.Uint16(id[6:8]),
		binary.BigEndian.Uint16(id[8:10]),
		id[10:16],
	)
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
