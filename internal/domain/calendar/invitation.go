package calendar

import (
	"crypto/rand"
	"math/big"
)

const invitationCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateInvitationCode mints a random code of 6 to 8 uppercase letters and
// digits. Codes are unique per calendar via a database constraint; on the
// unlikely collision the caller retries.
func GenerateInvitationCode() (string, error) {
	span, err := rand.Int(rand.Reader, big.NewInt(3))
	if err != nil {
		return "", err
	}
	length := 6 + int(span.Int64())

	code := make([]byte, length)
	for i := range code {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(invitationCharset))))
		if err != nil {
			return "", err
		}
		code[i] = invitationCharset[idx.Int64()]
	}
	return string(code), nil
}
