package middleware

import (
	"runtime/debug"

	"github.com/go-stride/stride/pkg/http"
	"github.com/go-stride/stride/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// ExceptionMiddleware recovers from handler panics and maps them to the
// internal error envelope so a panic never leaks a stack to the client.
func ExceptionMiddleware(c *fiber.Ctx) error {
	defer func() {
		if err := recover(); err != nil {
			_ = http.WithRepErr(c, http.InternalError.Code, errorToString(err), c.Path())
			log.Errorf("panic: %v", err)
		}
	}()

	return c.Next()
}

func errorToString(err any) string {
	switch v := err.(type) {
	case http.ResponseErr:
		if errMsg, ok := v.ErrMsg.(string); ok {
			return errMsg
		}
		return http.InternalError.Msg
	case error:
		log.Errorf("panic: %v\n%s", v, debug.Stack())
		return http.InternalError.Msg
	default:
		if errMsg, ok := v.(string); ok {
			return errMsg
		}
		return http.InternalError.Msg
	}
}
