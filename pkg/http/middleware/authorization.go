package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/go-stride/stride/internal/engine/consts"
	"github.com/go-stride/stride/pkg/http"
	"github.com/go-stride/stride/pkg/http/jwt"
	"github.com/go-stride/stride/pkg/log"
	"github.com/gofiber/fiber/v2"
	goJwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// AuthorizationMiddleware validates the bearer token and checks that a
// session is still present in redis for the token's user. Claims are
// stored in locals for downstream handlers.
func AuthorizationMiddleware(secretKey string, client *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aToken := c.Get("Authorization")
		if aToken == "" {
			return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
		}

		parts := strings.SplitN(aToken, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
		}

		claims, err := jwt.ParseToken(parts[1], secretKey)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
			}
			log.Errorf("parse token failed: %v", err)
			return http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
		}

		tokenKey := consts.UserTokenKey + claims.UserId
		exists, err := client.Exists(context.Background(), tokenKey).Result()
		if err != nil {
			log.Errorf("redis check token exists failed: %v", err)
			return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
		}
		if exists == 0 {
			return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
		}

		c.Locals(consts.Claims, claims)
		return c.Next()
	}
}
