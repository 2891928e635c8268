package tokens

import "github.com/golang-jwt/jwt/v5"

func RefreshClaimsFromToken(TokenStr string, RefreshSecret []byte, opts ...jwt.ParserOption) (*RefreshClaims, error) {
	var claims RefreshClaims
	tkn, err := jwt.ParseWithClaims(TokenStr, &claims, func(t *jwt.Token) (any, error) {
		return RefreshSecret, nil
	}, parserOptions(opts)...)
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Type != TypeRefresh {
		return nil, ErrWrongTokenType
	}
	return &claims, nil
}
