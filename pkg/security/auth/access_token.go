package auth

import (
	"time"

	"github.com/agubarev/warden/pkg/security/acl"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DefaultAccessTokenTTL is how long an issued access token stays valid
const DefaultAccessTokenTTL = 30 * time.Minute

// Claims is the access token payload; principals are embedded so that
// a permission evaluation doesn't require a store roundtrip
type Claims struct {
	Username   string          `json:"username"`
	Principals []acl.Principal `json:"principals"`

	jwt.StandardClaims
}

// NewAccessToken generates and signs a new access token
func NewAccessToken(secret []byte, jti uuid.UUID, username string, principals []acl.Principal, expireAt time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}

	atok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username:   username,
		Principals: principals,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: expireAt.Unix(),
			Id:        jti.String(),
		},
	})

	signedToken, err := atok.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to obtain a signed token string")
	}

	return signedToken, nil
}

// ParseAccessToken verifies a signed token string and returns its claims
func ParseAccessToken(secret []byte, signedToken string) (claims Claims, err error) {
	if len(secret) == 0 {
		return claims, ErrEmptySecret
	}

	token, err := jwt.ParseWithClaims(signedToken, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Wrapf(ErrInvalidToken, "unexpected signing method: %v", t.Header["alg"])
		}

		return secret, nil
	})

	if err != nil {
		if verr, ok := err.(*jwt.ValidationError); ok && verr.Errors&jwt.ValidationErrorExpired != 0 {
			return claims, ErrTokenExpired
		}

		return claims, errors.Wrap(ErrInvalidToken, err.Error())
	}

	if !token.Valid {
		return claims, ErrInvalidToken
	}

	return claims, nil
}
