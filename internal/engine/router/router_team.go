package router

import (
	"github.com/go-stride/stride/internal/engine/consts"
	"github.com/go-stride/stride/internal/engine/model"
	httpx "github.com/go-stride/stride/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) teamRouter(r fiber.Router, auth fiber.Handler) {
	teamGroup := r.Group("/team", auth)
	{
		teamGroup.Post("/create", rt.createTeam)
		teamGroup.Get("/list", rt.listTeams)
		teamGroup.Get("/:teamId", rt.getTeam)
		teamGroup.Post("/:teamId/members", rt.addTeamMembers)
	}
}

func (rt *Router) createTeam(c *fiber.Ctx) error {
	claims := rt.claims(c)
	if claims == nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, httpx.Unauthorized.Msg, c.Path())
	}

	var req model.CreateTeamReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	result := rt.teamService.CreateTeam(c.UserContext(), claims.UserId, &req)
	c.Locals(consts.DETAIL, result)
	return nil
}

// listTeams filters by projectId or leadId query parameter.
func (rt *Router) listTeams(c *fiber.Ctx) error {
	if projectId := c.Query("projectId"); projectId != "" {
		teams, err := rt.teamService.ListByProject(c.UserContext(), projectId)
		if err != nil {
			return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
		}
		c.Locals(consts.DETAIL, teams)
		return nil
	}

	if leadId := c.Query("leadId"); leadId != "" {
		teams, err := rt.teamService.ListByLead(c.UserContext(), leadId)
		if err != nil {
			return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
		}
		c.Locals(consts.DETAIL, teams)
		return nil
	}

	return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "projectId or leadId is required", c.Path())
}

func (rt *Router) getTeam(c *fiber.Ctx) error {
	teamId := c.Params("teamId")
	if teamId == "" {
		return httpx.WithRepErrMsg(c, httpx.TeamIdIsEmpty.Code, httpx.TeamIdIsEmpty.Msg, c.Path())
	}

	team, err := rt.teamService.GetTeam(c.UserContext(), teamId)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.NotFound.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, team)
	return nil
}

func (rt *Router) addTeamMembers(c *fiber.Ctx) error {
	claims := rt.claims(c)
	if claims == nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, httpx.Unauthorized.Msg, c.Path())
	}

	teamId := c.Params("teamId")
	if teamId == "" {
		return httpx.WithRepErrMsg(c, httpx.TeamIdIsEmpty.Code, httpx.TeamIdIsEmpty.Msg, c.Path())
	}

	var req model.AddTeamMembersReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	result := rt.teamService.AddMembers(c.UserContext(), claims.UserId, teamId, &req)
	c.Locals(consts.DETAIL, result)
	return nil
}
