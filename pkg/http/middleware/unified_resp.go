package middleware

import (
	"github.com/go-stride/stride/internal/engine/consts"
	httpx "github.com/go-stride/stride/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// UnifiedResponseMiddleware wraps handler output in the standard envelope.
// Handlers set c.Locals(consts.DETAIL, value) for a payload response or
// c.Locals(consts.OPERATION, ...) for a bare success acknowledgement.
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			return err
		}

		if c.Response().StatusCode() != fiber.StatusOK {
			return httpx.WithRepErrMsg(c, httpx.Failed.Code, httpx.Failed.Msg, c.Path())
		}

		if c.Response().StatusCode() >= fiber.StatusOK && c.Response().StatusCode() < fiber.StatusMultipleChoices {
			if detail := c.Locals(consts.DETAIL); detail != nil {
				return httpx.WithRepJSON(c, detail)
			}

			if c.Locals(consts.OPERATION) != nil {
				return httpx.WithRepNotDetail(c)
			}
		}

		return nil
	}
}
