package router

import (
	"github.com/go-stride/stride/internal/engine/consts"
	"github.com/go-stride/stride/internal/engine/model"
	httpx "github.com/go-stride/stride/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) taskRouter(r fiber.Router, auth fiber.Handler) {
	taskGroup := r.Group("/task", auth)
	{
		taskGroup.Post("/assign", rt.assignTask)
		taskGroup.Post("/assign/member", rt.assignTaskMember)
		taskGroup.Get("/list", rt.listTasks)
		taskGroup.Get("/:taskId", rt.getTask)
		taskGroup.Put("/:taskId/status", rt.updateTaskStatus)
		taskGroup.Post("/:taskId/attachment", rt.addTaskAttachment)
		taskGroup.Post("/:taskId/submit", rt.sendTaskForApproval)
		taskGroup.Post("/:taskId/review", rt.requestTaskReview)
		taskGroup.Post("/:taskId/approve", rt.approveTaskCompletion)
		taskGroup.Post("/:taskId/reject", rt.rejectTask)
		taskGroup.Post("/:taskId/revise", rt.requestTaskModifications)
		taskGroup.Delete("/:taskId", rt.deleteTask)
	}
}

func (rt *Router) assignTask(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req model.AssignTaskReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	result := rt.taskService.AssignTask(c.UserContext(), caller, &req)
	c.Locals(consts.DETAIL, result)
	return nil
}

func (rt *Router) assignTaskMember(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	var req model.AssignTaskReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	result := rt.taskService.AssignTaskMember(c.UserContext(), caller, &req)
	c.Locals(consts.DETAIL, result)
	return nil
}

// listTasks filters by projectId when given. Without a filter, managers
// and leads get the tasks they created and members get their assignments.
func (rt *Router) listTasks(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	if projectId := c.Query("projectId"); projectId != "" {
		tasks, err := rt.taskService.ListByProject(c.UserContext(), projectId)
		if err != nil {
			return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
		}
		c.Locals(consts.DETAIL, tasks)
		return nil
	}

	tasks, err := rt.taskService.ListForUser(c.UserContext(), caller)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), c.Path())
	}
	c.Locals(consts.DETAIL, tasks)
	return nil
}

func (rt *Router) getTask(c *fiber.Ctx) error {
	taskId := c.Params("taskId")
	if taskId == "" {
		return httpx.WithRepErrMsg(c, httpx.TaskIdIsEmpty.Code, httpx.TaskIdIsEmpty.Msg, c.Path())
	}

	task, err := rt.taskService.GetTask(c.UserContext(), taskId)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.NotFound.Code, err.Error(), c.Path())
	}

	c.Locals(consts.DETAIL, task)
	return nil
}

func (rt *Router) updateTaskStatus(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	taskId := c.Params("taskId")
	if taskId == "" {
		return httpx.WithRepErrMsg(c, httpx.TaskIdIsEmpty.Code, httpx.TaskIdIsEmpty.Msg, c.Path())
	}

	var req model.UpdateTaskStatusReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	result := rt.taskService.UpdateTaskStatus(c.UserContext(), caller, taskId, req.Status)
	c.Locals(consts.DETAIL, result)
	return nil
}

func (rt *Router) addTaskAttachment(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	taskId := c.Params("taskId")
	if taskId == "" {
		return httpx.WithRepErrMsg(c, httpx.TaskIdIsEmpty.Code, httpx.TaskIdIsEmpty.Msg, c.Path())
	}

	var req model.AttachmentReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	result := rt.taskService.AddAttachment(c.UserContext(), caller, taskId, req.Attachment)
	c.Locals(consts.DETAIL, result)
	return nil
}

func (rt *Router) sendTaskForApproval(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	taskId := c.Params("taskId")
	if taskId == "" {
		return httpx.WithRepErrMsg(c, httpx.TaskIdIsEmpty.Code, httpx.TaskIdIsEmpty.Msg, c.Path())
	}

	result := rt.taskService.SendForApproval(c.UserContext(), caller, taskId)
	c.Locals(consts.DETAIL, result)
	return nil
}

func (rt *Router) requestTaskReview(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	taskId := c.Params("taskId")
	if taskId == "" {
		return httpx.WithRepErrMsg(c, httpx.TaskIdIsEmpty.Code, httpx.TaskIdIsEmpty.Msg, c.Path())
	}

	result := rt.taskService.RequestReview(c.UserContext(), caller, taskId)
	c.Locals(consts.DETAIL, result)
	return nil
}

func (rt *Router) approveTaskCompletion(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	taskId := c.Params("taskId")
	if taskId == "" {
		return httpx.WithRepErrMsg(c, httpx.TaskIdIsEmpty.Code, httpx.TaskIdIsEmpty.Msg, c.Path())
	}

	var req model.ApproveTaskReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	result := rt.taskService.ApproveCompletion(c.UserContext(), caller, taskId, &req)
	c.Locals(consts.DETAIL, result)
	return nil
}

func (rt *Router) rejectTask(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	taskId := c.Params("taskId")
	if taskId == "" {
		return httpx.WithRepErrMsg(c, httpx.TaskIdIsEmpty.Code, httpx.TaskIdIsEmpty.Msg, c.Path())
	}

	var req model.RejectTaskReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	result := rt.taskService.Reject(c.UserContext(), caller, taskId, req.Remarks)
	c.Locals(consts.DETAIL, result)
	return nil
}

func (rt *Router) requestTaskModifications(c *fiber.Ctx) error {
	caller, err := rt.caller(c)
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, err.Error(), c.Path())
	}

	taskId := c.Params("taskId")
	if taskId == "" {
		return httpx.WithRepErrMsg(c, httpx.TaskIdIsEmpty.Code, httpx.TaskIdIsEmpty.Msg, c.Path())
	}

	var req model.ReviseTaskReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, err.Error(), c.Path())
	}

	result := rt.taskService.RequestModifications(c.UserContext(), caller, taskId, req.Remarks)
	c.Locals(consts.DETAIL, result)
	return nil
}

func (rt *Router) deleteTask(c *fiber.Ctx) error {
	claims := rt.claims(c)
	if claims == nil {
		return httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, httpx.Unauthorized.Msg, c.Path())
	}

	taskId := c.Params("taskId")
	if taskId == "" {
		return httpx.WithRepErrMsg(c, httpx.TaskIdIsEmpty.Code, httpx.TaskIdIsEmpty.Msg, c.Path())
	}

	result := rt.taskService.DeleteTask(c.UserContext(), claims.UserId, taskId)
	c.Locals(consts.DETAIL, result)
	return nil
}
