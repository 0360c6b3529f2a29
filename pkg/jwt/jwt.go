// Package jwt emite y valida los tokens de acceso de la API.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errEmptySecret = errors.New("jwt: secret vacío")

// Session identidad autenticada que viaja dentro del token: quién es el
// usuario, a qué empresa pertenece y con qué rol opera. El middleware RBAC
// decide con Role sin volver a consultar la base.
type Session struct {
	UserID    string
	CompanyID string
	Role      string // admin | manager | operator
}

// accessClaims claims del token de acceso. El sujeto registrado es el
// usuario; empresa y rol viajan como claims propios abreviados.
type accessClaims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"cid"`
	Role      string `json:"rol"`
}

// Generate firma un token HS256 para la sesión indicada.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", errEmptySecret
	}
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		CompanyID: companyID,
		Role:      role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y vigencia del token y devuelve la sesión contenida.
// Solo se acepta HMAC: cualquier otro método de firma se rechaza.
func Parse(secret, tokenString string) (Session, error) {
	if secret == "" {
		return Session{}, errEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Session{}, err
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return Session{}, errors.New("jwt: claims inválidos")
	}
	return Session{
		UserID:    claims.Subject,
		CompanyID: claims.CompanyID,
		Role:      claims.Role,
	}, nil
}
