package jwt

import "github.com/golang-jwt/jwt/v5"

// Claims carried by gateway access tokens. Subject holds the caller id.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
