package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"talentika/internal/shared/authorization"
)

var (
	ErrMissingSubject = errors.New("token has no subject")
)

type AppMetadata struct {
	Role string `json:"role"`
}

// Claims is the access token minted by the identity provider. Application roles live in
// app_metadata.role; the top level role claim is the provider's own database role.
type Claims struct {
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	AppMetadata AppMetadata `json:"app_metadata"`
	jwt.RegisteredClaims
}

// UserRole resolves the application role, defaulting to user.
func (c *Claims) UserRole() authorization.UserRole {
	if c.AppMetadata.Role != "" {
		return authorization.ParseUserRole(c.AppMetadata.Role)
	}
	return authorization.ParseUserRole(c.Role)
}

// JWTVerifier validates HS256 access tokens issued by the external identity provider.
// This service never mints tokens of its own.
type JWTVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewJWTVerifier(secret, issuer, audience string) *JWTVerifier {
	return &JWTVerifier{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

func (v *JWTVerifier) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
