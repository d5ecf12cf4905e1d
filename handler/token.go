package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const tokenTTL = 24 * time.Hour

type JwtCustomClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for username carrying the admin claim.
func (t *TokenIssuer) Issue(username string, admin bool) (string, error) {
	now := t.now()
	claims := &JwtCustomClaims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	return signed, errors.Wrap(err, "sign token")
}

func (t *TokenIssuer) parse(raw string) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(raw, new(JwtCustomClaims), func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return token, nil
}

// Claims decodes raw. Any invalid or expired token yields nil.
func (t *TokenIssuer) Claims(raw string) *JwtCustomClaims {
	token, err := t.parse(raw)
	if err != nil {
		return nil
	}
	claims, _ := token.Claims.(*JwtCustomClaims)
	return claims
}

// Middleware decodes a bearer token when one is present. Requests without a
// valid token pass through without admin context; RequireAdmin decides.
func (t *TokenIssuer) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return t.parse(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

func claimsFrom(c echo.Context) *JwtCustomClaims {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, _ := token.Claims.(*JwtCustomClaims)
	return claims
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if claims := claimsFrom(c); claims == nil || !claims.Admin {
			return echo.NewHTTPError(http.StatusUnauthorized, "admin login required")
		}
		return next(c)
	}
}
