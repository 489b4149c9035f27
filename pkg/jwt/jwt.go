package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims estándar más la identidad que el proveedor de sesión incluye en el token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Nombre string `json:"name"`
}

// Sesion identidad a firmar.
type Sesion struct {
	UserID string
	Email  string
	Nombre string
}

// Generate firma un token HS256. En producción los tokens los emite el proveedor de
// identidad; se usa en desarrollo (consola) y en tests.
func Generate(secret, issuer string, s Sesion, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if s.UserID == "" {
		return "", fmt.Errorf("jwt: user id vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: s.UserID,
		Email:  s.Email,
		Nombre: s.Nombre,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma, expiración y emisor (si issuer no está vacío) y devuelve la sesión.
func Parse(secret, issuer, tokenString string) (Sesion, error) {
	if secret == "" {
		return Sesion{}, fmt.Errorf("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Sesion{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Sesion{}, fmt.Errorf("claims inválidos")
	}
	id := claims.UserID
	if id == "" {
		id = claims.Subject
	}
	if id == "" {
		return Sesion{}, fmt.Errorf("claims inválidos: sin usuario")
	}
	return Sesion{UserID: id, Email: claims.Email, Nombre: claims.Nombre}, nil
}
