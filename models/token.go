package models

// SessionClaims is the payload carried by a session token. Validity is a
// pure function of the signature and ExpiresAt; there is no server-side
// revocation list.
type SessionClaims struct {
	Issuer    string `json:"iss,omitempty"`
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
