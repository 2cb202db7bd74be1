package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-stride/stride/pkg/http"
	"github.com/go-stride/stride/pkg/log"
	"github.com/golang-jwt/jwt/v5"
)

type AuthClaims struct {
	UserId string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var issUser = "stride"

// GenToken generates an access_token and refresh_token pair.
func GenToken(userId, role string, secretKey []byte, accessExpired, refreshExpired time.Duration) (aToken, rToken string, err error) {

	aClaims := &AuthClaims{
		UserId: userId,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issUser,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessExpired * time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	aToken, aErr := jwt.NewWithClaims(jwt.SigningMethodHS256, aClaims).SignedString(secretKey)
	if aErr != nil {
		log.Errorw("jwt.NewWithClaims err", "error", aErr)
		return "", "", aErr
	}

	rClaims := jwt.RegisteredClaims{
		Issuer:    issUser,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(refreshExpired * time.Minute)),
	}
	rToken, rErr := jwt.NewWithClaims(jwt.SigningMethodHS256, rClaims).SignedString(secretKey)
	if rErr != nil {
		log.Debugw("jwt.NewWithClaims err", "error", rErr)
		return "", "", rErr
	}

	return aToken, rToken, nil
}

// ParseToken validates an access_token and returns its claims.
func ParseToken(aToken, secretKey string) (claims *AuthClaims, err error) {
	claims = new(AuthClaims)
	token, err := jwt.ParseWithClaims(aToken, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, jwt.ErrTokenExpired
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// RefreshToken issues a new token pair from a valid refresh token.
func RefreshToken(auth *http.Auth, userId, role, rToken string) (map[string]string, error) {
	newToken := make(map[string]string)

	var refreshClaims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(rToken, &refreshClaims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(auth.SecretKey), nil
	})

	if err != nil || !token.Valid {
		return newToken, errors.New(http.InvalidToken.Msg)
	}

	if refreshClaims.ExpiresAt.Before(time.Now()) {
		return newToken, errors.New(http.TokenExpired.Msg)
	}

	newAToken, newRToken, err := GenToken(userId, role, []byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	if err != nil {
		return newToken, err
	}

	newToken["accessToken"] = newAToken
	newToken["refreshToken"] = newRToken

	return newToken, nil
}
