package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoVerificationKey = errors.New("no token verification key configured")

// Claims are the identity fields this service reads from a token
type Claims struct {
	UserID string
	Email  string
}

// Verifier validates bearer tokens signed with HS256 (shared secret) or RS256 (JWKS)
type Verifier struct {
	secret []byte
	keys   *KeySet
}

// NewVerifier accepts an empty secret or a nil key set when that algorithm is not in use
func NewVerifier(secret string, keys *KeySet) *Verifier {
	v := &Verifier{keys: keys}
	if secret != "" {
		v.secret = []byte(secret)
	}
	return v
}

func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, v.keyFunc, jwt.WithValidMethods([]string{"HS256", "RS256"}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	// Tokens minted by the account service carry "id"; OIDC providers use "sub"
	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		sub, _ = mapClaims["id"].(string)
	}
	if sub == "" {
		return nil, errors.New("token has no subject")
	}
	email, _ := mapClaims["email"].(string)

	return &Claims{UserID: sub, Email: email}, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if v.secret == nil {
			return nil, fmt.Errorf("HS256 token received: %w", ErrNoVerificationKey)
		}
		return v.secret, nil
	case *jwt.SigningMethodRSA:
		if v.keys == nil {
			return nil, fmt.Errorf("RS256 token received: %w", ErrNoVerificationKey)
		}
		return v.keys.KeyFunc(token)
	default:
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
}
