package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

type Admin struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

type JWTClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

type Response struct {
	Success bool `json:"success"`
}
