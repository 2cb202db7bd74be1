package router

import (
	"github.com/go-stride/stride/internal/engine/consts"
	"github.com/go-stride/stride/internal/engine/model"
	httpx "github.com/go-stride/stride/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) authRouter(r fiber.Router, auth fiber.Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.Post("/signup", rt.signup)
		authGroup.Post("/login", rt.login)

		authGroup.Post("/logout", auth, rt.logout)
		authGroup.Post("/refresh", auth, rt.refresh)
	}
}

func (rt *Router) signup(c *fiber.Ctx) error {
	var register model.Register
	if err := c.BodyParser(&register); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	if err := rt.authService.Register(c.UserContext(), &register); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, "")
	return nil
}

func (rt *Router) login(c *fiber.Ctx) error {
	var login model.Login
	if err := c.BodyParser(&login); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	resp, err := rt.authService.Login(c.UserContext(), &login)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.AuthenticationFailed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, resp)
	return nil
}

func (rt *Router) logout(c *fiber.Ctx) error {
	claims := rt.claims(c)
	if claims == nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, httpx.Unauthorized.Msg, c.Path())
	}

	if err := rt.authService.Logout(claims.UserId); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, "")
	return nil
}

func (rt *Router) refresh(c *fiber.Ctx) error {
	claims := rt.claims(c)
	if claims == nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, httpx.Unauthorized.Msg, c.Path())
	}

	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.BodyParser(&body); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	token, err := rt.authService.Refresh(claims.UserId, claims.Role, body.RefreshToken)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.InvalidToken.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, token)
	return nil
}
