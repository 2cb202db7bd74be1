package router

import (
	"github.com/go-stride/stride/internal/engine/consts"
	"github.com/go-stride/stride/internal/engine/model"
	httpx "github.com/go-stride/stride/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) userRouter(r fiber.Router, auth fiber.Handler) {
	userGroup := r.Group("/user", auth)
	{
		userGroup.Get("/managers", rt.listByRole(model.RoleProjectManager))
		userGroup.Get("/leads", rt.listByRole(model.RoleTeamLead))
		userGroup.Get("/members", rt.listByRole(model.RoleTeamMember))
		userGroup.Get("/:userId", rt.getUserInfo)
	}
}

func (rt *Router) getUserInfo(c *fiber.Ctx) error {
	userId := c.Params("userId")
	if userId == "" {
		return httpx.WithRepErrMsg(c, httpx.UserIdIsEmpty.Code, httpx.UserIdIsEmpty.Msg, c.Path())
	}

	info, err := rt.userService.GetUserInfo(c.UserContext(), userId)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.UserNotExist.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, info)
	return nil
}

func (rt *Router) listByRole(role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		infos, err := rt.userService.ListByRole(c.UserContext(), role)
		if err != nil {
			return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
		}
		c.Locals(consts.DETAIL, infos)
		return nil
	}
}
