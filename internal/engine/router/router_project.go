package router

import (
	"github.com/go-stride/stride/internal/engine/consts"
	"github.com/go-stride/stride/internal/engine/model"
	httpx "github.com/go-stride/stride/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) projectRouter(r fiber.Router, auth fiber.Handler) {
	projectGroup := r.Group("/project", auth)
	{
		projectGroup.Post("/create", rt.createProject)
		projectGroup.Get("/list", rt.listProjects)
		projectGroup.Get("/lead", rt.listLeadProjects)
		projectGroup.Get("/member", rt.listMemberProjects)
		projectGroup.Get("/:projectId", rt.getProject)
		projectGroup.Post("/:projectId/leads", rt.assignTeamLeads)
		projectGroup.Post("/:projectId/leave", rt.leaveProject)
		projectGroup.Delete("/:projectId", rt.deleteProject)
	}
}

func (rt *Router) createProject(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req model.CreateProjectReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	project, err := rt.projectService.CreateProject(c.UserContext(), caller, &req)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, project)
	return nil
}

// listProjects returns the caller's projects: owned for managers, assigned
// for leads, joined-via-team for members.
func (rt *Router) listProjects(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	projects, err := rt.projectService.ListProjects(c.UserContext(), caller)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, projects)
	return nil
}

// listLeadProjects returns the projects that list the caller as a lead,
// regardless of the caller's role.
func (rt *Router) listLeadProjects(c *fiber.Ctx) error {
	claims := rt.claims(c)
	if claims == nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, httpx.Unauthorized.Msg, c.Path())
	}

	projects, err := rt.projectService.ListLeadProjects(c.UserContext(), claims.UserId)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, projects)
	return nil
}

// listMemberProjects returns the projects behind the caller's team
// memberships.
func (rt *Router) listMemberProjects(c *fiber.Ctx) error {
	claims := rt.claims(c)
	if claims == nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, httpx.Unauthorized.Msg, c.Path())
	}

	projects, err := rt.projectService.ListMemberProjects(c.UserContext(), claims.UserId)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, projects)
	return nil
}

func (rt *Router) getProject(c *fiber.Ctx) error {
	projectId := c.Params("projectId")
	if projectId == "" {
		return httpx.WithRepErrMsg(c, httpx.ProjectIdIsEmpty.Code, httpx.ProjectIdIsEmpty.Msg, c.Path())
	}

	project, err := rt.projectService.GetProject(c.UserContext(), projectId)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.NotFound.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, project)
	return nil
}

func (rt *Router) assignTeamLeads(c *fiber.Ctx) error {
	claims := rt.claims(c)
	if claims == nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, httpx.Unauthorized.Msg, c.Path())
	}

	projectId := c.Params("projectId")
	if projectId == "" {
		return httpx.WithRepErrMsg(c, httpx.ProjectIdIsEmpty.Code, httpx.ProjectIdIsEmpty.Msg, c.Path())
	}

	var req model.AssignTeamLeadsReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	result := rt.projectService.AssignTeamLeads(c.UserContext(), claims.UserId, projectId, &req)
	c.Locals(consts.DETAIL, result)
	return nil
}

func (rt *Router) deleteProject(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	projectId := c.Params("projectId")
	if projectId == "" {
		return httpx.WithRepErrMsg(c, httpx.ProjectIdIsEmpty.Code, httpx.ProjectIdIsEmpty.Msg, c.Path())
	}

	if err := rt.projectService.DeleteProject(c.UserContext(), caller, projectId); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, "")
	return nil
}

func (rt *Router) leaveProject(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	projectId := c.Params("projectId")
	if projectId == "" {
		return httpx.WithRepErrMsg(c, httpx.ProjectIdIsEmpty.Code, httpx.ProjectIdIsEmpty.Msg, c.Path())
	}

	if err := rt.projectService.LeaveProject(c.UserContext(), caller, projectId); err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}

	c.Locals(consts.OPERATION, "")
	return nil
}
