package internal

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

const sessionTokenRawSize = 32

// ContextID is the opaque identifier a transport hands out to a caller
// (typically as a session cookie value) and later attaches to the request
// context. It only names a browser-side session slot; the authorization
// decision always comes from the token stored behind it.
type ContextID [16]byte

// NewSessionToken returns a fresh session token: 32 bytes from crypto/rand,
// base64url without padding.
func NewSessionToken() (string, error) {
	var raw [sessionTokenRawSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw[:]), nil
}

func NewContextID() (ContextID, error) {
	var cid ContextID
	_, err := rand.Read(cid[:])
	return cid, err
}

func (c ContextID) Bytes() []byte {
	return c[:]
}

func (c ContextID) String() string {
	// base64url, no padding, compact
	return base64.RawURLEncoding.EncodeToString(c[:])
}

func ParseContextID(id string) (ContextID, error) {
	var cid ContextID

	raw, err := base64.RawURLEncoding.DecodeString(id)
	if err != nil {
		return cid, err
	}
	if len(raw) != len(cid) {
		return cid, errors.New("invalid context id size")
	}

	copy(cid[:], raw)
	return cid, nil
}
