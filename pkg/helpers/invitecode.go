package helpers

import "math/rand"

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InviteCodeLength is the fixed invite code size.
const InviteCodeLength = 6

// NewInviteCode draws a 6-character uppercase alphanumeric token from a
// pseudo-random generator. Codes are not checked for uniqueness against
// existing workspaces; on lookup the first match wins.
func NewInviteCode() string {
	b := make([]byte, InviteCodeLength)
	for i := range b {
		b[i] = inviteCodeAlphabet[rand.Intn(len(inviteCodeAlphabet))]
	}
	return string(b)
}
