package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity identidad de sesión que viaja dentro del token. El rol y la empresa
// van en los claims para que el middleware RBAC y el resolver de visibilidad
// decidan sin tocar el repositorio de usuarios en cada request.
type Identity struct {
	UserID    string
	CompanyID string
	Role      string
}

// sessionClaims claims del token: el usuario va en Subject (claim estándar),
// empresa y rol como claims propios abreviados.
type sessionClaims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"cid"`
	Role      string `json:"rol"`
}

// Generate firma un token HS256 con la identidad de sesión y el TTL dado.
func Generate(secret, issuer string, ttl time.Duration, id Identity) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		CompanyID: id.CompanyID,
		Role:      id.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y vigencia y reconstruye la identidad de sesión.
// Solo se acepta HMAC: un token con otro algoritmo es inválido.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	return Identity{
		UserID:    claims.Subject,
		CompanyID: claims.CompanyID,
		Role:      claims.Role,
	}, nil
}
