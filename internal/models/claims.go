package models

import "github.com/golang-jwt/jwt/v5"

// OperatorClaims is the JWT payload for the single operator session.
// The token is self-verifying; no server-side session state exists.
type OperatorClaims struct {
	jwt.RegisteredClaims
	Operator bool `json:"operator"`
}
