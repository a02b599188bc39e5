package entity

import "github.com/golang-jwt/jwt/v5"

// Claims are the bearer token claims. The subject is the user's email.
type Claims struct {
	FullName    string   `json:"fullname"`
	Authorities []string `json:"authorities"`
	jwt.RegisteredClaims
}
