package tokens

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrWrongTokenType = errors.New("wrong token type")

func AccessClaimsFromToken(TokenStr string, AccessSecret []byte, opts ...jwt.ParserOption) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(TokenStr, &claims, func(t *jwt.Token) (any, error) {
		return AccessSecret, nil
	}, parserOptions(opts)...)
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Type != TypeAccess {
		return nil, ErrWrongTokenType
	}
	return &claims, nil
}
