package tokens

import "github.com/golang-jwt/jwt/v5"

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

type AccessClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Type     string `json:"typ"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Type     string `json:"typ"`
	jwt.RegisteredClaims
}

func parserOptions(opts []jwt.ParserOption) []jwt.ParserOption {
	return append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}, opts...)
}

func Sign(claims jwt.Claims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
