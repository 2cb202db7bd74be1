/*
Copyright 2025 Stride Team

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-stride/stride/internal/engine/model"
	"github.com/go-stride/stride/internal/engine/repo"
	"github.com/go-stride/stride/internal/pkg/notify"
	"github.com/go-stride/stride/pkg/id"
	"github.com/go-stride/stride/pkg/log"
	"github.com/go-stride/stride/pkg/statemachine"
)

// TaskService implements the task lifecycle. Every transition appends a
// history entry whose oldStatus is captured before the task is mutated.
// Notification failures never fail or roll back a transition.
type TaskService struct {
	taskRepo    repo.ITaskRepository
	projectRepo repo.IProjectRepository
	teamRepo    repo.ITeamRepository
	userRepo    repo.IUserRepository
	access      *AccessResolver
	dispatcher  *notify.Dispatcher
	lifecycle   *statemachine.StateMachine[statemachine.TaskStatus]
}

func NewTaskService(
	taskRepo repo.ITaskRepository,
	projectRepo repo.IProjectRepository,
	teamRepo repo.ITeamRepository,
	userRepo repo.IUserRepository,
	access *AccessResolver,
	dispatcher *notify.Dispatcher,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		access:      access,
		dispatcher:  dispatcher,
		lifecycle:   statemachine.NewTaskLifecycle(),
	}
}

func failTask(format string, args ...any) *model.TaskResult {
	return &model.TaskResult{Success: false, Message: fmt.Sprintf(format, args...)}
}

// AssignTask creates a task for a lead on the project. Only the project's
// manager may call it, and assignedTo must appear in the project's lead
// assignments.
func (ts *TaskService) AssignTask(c context.Context, caller *model.UserInfo, req *model.AssignTaskReq) *model.TaskResult {
	if !id.IsValid(req.ProjectId) {
		return failTask("Invalid project ID")
	}
	if !id.IsValid(req.AssignedTo) {
		return failTask("Invalid assignedTo ID")
	}

	project, err := ts.projectRepo.GetProjectById(c, req.ProjectId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return failTask("Project not found")
		}
		return failTask("Failed to assign task: %v", err)
	}
	if !ts.access.IsProjectManager(project, caller.UserId) {
		return failTask("Access Denied: Only the Project Manager can assign tasks.")
	}
	if !ts.access.IsProjectLead(project, req.AssignedTo) {
		return failTask("Assigned user is not a Team Lead of this project.")
	}

	return ts.createTask(c, caller, project, req)
}

// AssignTaskMember creates a task for a member of one of the project's
// teams. Only an assigned lead of the project may call it.
func (ts *TaskService) AssignTaskMember(c context.Context, caller *model.UserInfo, req *model.AssignTaskReq) *model.TaskResult {
	if !id.IsValid(req.ProjectId) {
		return failTask("Invalid project ID")
	}
	if !id.IsValid(req.AssignedTo) {
		return failTask("Invalid assignedTo ID")
	}

	project, err := ts.projectRepo.GetProjectById(c, req.ProjectId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return failTask("Project not found")
		}
		return failTask("Failed to assign task: %v", err)
	}
	if !ts.access.IsProjectLead(project, caller.UserId) {
		return failTask("Access Denied: Only an assigned Team Lead can assign member tasks.")
	}
	isMember, err := ts.access.IsProjectMember(c, req.ProjectId, req.AssignedTo)
	if err != nil {
		return failTask("Failed to assign task: %v", err)
	}
	if !isMember {
		return failTask("Assigned user is not a Team Member of this project.")
	}

	return ts.createTask(c, caller, project, req)
}

func (ts *TaskService) createTask(c context.Context, caller *model.UserInfo, project *model.Project, req *model.AssignTaskReq) *model.TaskResult {
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.IsValid() {
		return failTask("Invalid priority: %s", req.Priority)
	}

	var dueDate time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			return failTask("Invalid due date: %s", req.DueDate)
		}
		dueDate = parsed
	}

	task := &model.Task{
		BaseModel:   model.BaseModel{Id: id.GetUUIDWithoutDashes()},
		Title:       req.Title,
		Description: req.Description,
		ProjectId:   project.Id,
		CreatedBy:   caller.UserId,
		AssignedTo:  req.AssignedTo,
		Status:      statemachine.TaskToDo,
		Priority:    priority,
		DueDate:     dueDate,
		Attachments: []string{},
		History:     []model.HistoryEntry{},
	}
	if err := ts.taskRepo.CreateTask(c, task); err != nil {
		return failTask("Failed to assign task: %v", err)
	}

	assignee, err := ts.userRepo.GetUserById(c, req.AssignedTo)
	if err != nil {
		return &model.TaskResult{Success: true, Message: "Task assigned but user not found for email notification.", Task: task}
	}
	ts.dispatcher.Enqueue(notify.TaskAssignedMail(assignee.Email, assignee.Username, task.Title, project.Title))

	return &model.TaskResult{Success: true, Message: "Task assigned successfully", Task: task}
}

// UpdateTaskStatus sets the task status to a caller-supplied value.
// Members may only pick from a fixed allow-list and must be the assignee;
// leads and managers may set any valid status. A disallowed value is
// refused, never clamped.
func (ts *TaskService) UpdateTaskStatus(c context.Context, caller *model.UserInfo, taskId string, status statemachine.TaskStatus) *model.TaskResult {
	if !id.IsValid(taskId) {
		return failTask("Invalid task ID")
	}

	task, err := ts.taskRepo.GetTaskById(c, taskId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return failTask("Task not found")
		}
		return failTask("Failed to update task: %v", err)
	}

	switch caller.Role {
	case model.RoleTeamMember:
		if task.AssignedTo != caller.UserId {
			return failTask("Only the assigned member can update this task.")
		}
		if !status.MemberCanSet() {
			return failTask("Invalid task status")
		}
	default:
		if !status.IsValid() {
			return failTask("Invalid task status")
		}
	}

	prev := task.Status
	task.RecordTransition(caller.UserId, prev, status)
	if err := ts.taskRepo.UpdateTask(c, task); err != nil {
		return failTask("Failed to update task: %v", err)
	}
	return &model.TaskResult{Success: true, Message: "Task status updated", Task: task}
}

// AddAttachment appends an opaque attachment URL. Only the assignee may
// attach.
func (ts *TaskService) AddAttachment(c context.Context, caller *model.UserInfo, taskId, attachment string) *model.TaskResult {
	if !id.IsValid(taskId) {
		return failTask("Invalid task ID")
	}
	if attachment == "" {
		return failTask("Attachment is required")
	}

	task, err := ts.taskRepo.GetTaskById(c, taskId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return failTask("Task not found")
		}
		return failTask("Failed to add attachment: %v", err)
	}
	if task.AssignedTo != caller.UserId {
		return failTask("Only the assigned member can add attachments.")
	}

	task.Attachments = append(task.Attachments, attachment)
	if err := ts.taskRepo.UpdateTask(c, task); err != nil {
		return failTask("Failed to add attachment: %v", err)
	}
	return &model.TaskResult{Success: true, Message: "Attachment added successfully", Task: task}
}

// SendForApproval moves a Done task to Pending Approval and mails the
// task's creator. Any other current status is refused.
func (ts *TaskService) SendForApproval(c context.Context, caller *model.UserInfo, taskId string) *model.TaskResult {
	if !id.IsValid(taskId) {
		return failTask("Invalid task ID")
	}

	task, err := ts.taskRepo.GetTaskById(c, taskId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return failTask("Task not found")
		}
		return failTask("Failed to send for approval: %v", err)
	}
	if task.AssignedTo != caller.UserId {
		return failTask("Only the assigned member can request approval.")
	}
	if task.Status != statemachine.TaskDone || !ts.lifecycle.CanTransit(task.Status, statemachine.TaskPendingApproval) {
		return failTask("Only 'Done' tasks can be sent for approval.")
	}

	prev := task.Status
	task.RecordTransition(caller.UserId, prev, statemachine.TaskPendingApproval)
	if err := ts.taskRepo.UpdateTask(c, task); err != nil {
		return failTask("Failed to send for approval: %v", err)
	}

	if creator, err := ts.userRepo.GetUserById(c, task.CreatedBy); err == nil {
		ts.dispatcher.Enqueue(notify.TaskSubmittedMail(creator.Email, creator.Username, task.Title, caller.Username))
	} else {
		log.Warnw("task creator not found for approval notification", "taskId", task.Id, "createdBy", task.CreatedBy)
	}
	return &model.TaskResult{Success: true, Message: "Task sent for approval", Task: task}
}

// RequestReview moves a Pending Approval task to Under Review.
func (ts *TaskService) RequestReview(c context.Context, caller *model.UserInfo, taskId string) *model.TaskResult {
	if !id.IsValid(taskId) {
		return failTask("Invalid task ID")
	}

	task, err := ts.taskRepo.GetTaskById(c, taskId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return failTask("Task not found")
		}
		return failTask("Failed to request review: %v", err)
	}
	if task.AssignedTo != caller.UserId {
		return failTask("Only the assigned member can request a review.")
	}
	if task.Status != statemachine.TaskPendingApproval || !ts.lifecycle.CanTransit(task.Status, statemachine.TaskUnderReview) {
		return failTask("Only 'Pending Approval' tasks can be sent for review.")
	}

	prev := task.Status
	task.RecordTransition(caller.UserId, prev, statemachine.TaskUnderReview)
	if err := ts.taskRepo.UpdateTask(c, task); err != nil {
		return failTask("Failed to request review: %v", err)
	}
	return &model.TaskResult{Success: true, Message: "Task sent for review", Task: task}
}

// ApproveCompletion settles a review: Completed when approved, back to In
// Progress otherwise. There is deliberately no precondition on the current
// status. The assignee is mailed the verdict.
func (ts *TaskService) ApproveCompletion(c context.Context, caller *model.UserInfo, taskId string, req *model.ApproveTaskReq) *model.TaskResult {
	task, _, result := ts.loadTaskForReview(c, caller, taskId)
	if result != nil {
		return result
	}

	next := statemachine.TaskInProgress
	if req.Approved {
		next = statemachine.TaskCompleted
	}

	prev := task.Status
	task.Remarks = req.Remarks
	task.RecordTransition(caller.UserId, prev, next)
	if err := ts.taskRepo.UpdateTask(c, task); err != nil {
		return failTask("Failed to approve task: %v", err)
	}

	if assignee, err := ts.userRepo.GetUserById(c, task.AssignedTo); err == nil {
		ts.dispatcher.Enqueue(notify.TaskApprovedMail(assignee.Email, assignee.Username, task.Title, req.Approved, req.Remarks))
	}

	msg := "Task rejected, sent back to In Progress."
	if req.Approved {
		msg = "Task approved successfully!"
	}
	return &model.TaskResult{Success: true, Message: msg, Task: task}
}

// Reject marks the task Rejected with the reviewer's remarks.
func (ts *TaskService) Reject(c context.Context, caller *model.UserInfo, taskId, remarks string) *model.TaskResult {
	task, _, result := ts.loadTaskForReview(c, caller, taskId)
	if result != nil {
		return result
	}

	prev := task.Status
	task.Remarks = remarks
	task.RecordTransition(caller.UserId, prev, statemachine.TaskRejected)
	if err := ts.taskRepo.UpdateTask(c, task); err != nil {
		return failTask("Failed to reject task: %v", err)
	}

	if assignee, err := ts.userRepo.GetUserById(c, task.AssignedTo); err == nil {
		ts.dispatcher.Enqueue(notify.TaskRejectedMail(assignee.Email, assignee.Username, task.Title, remarks))
	}
	return &model.TaskResult{Success: true, Message: "Task rejected successfully!", Task: task}
}

// RequestModifications marks the task Needs Revision with feedback for the
// assignee.
func (ts *TaskService) RequestModifications(c context.Context, caller *model.UserInfo, taskId, feedback string) *model.TaskResult {
	task, _, result := ts.loadTaskForReview(c, caller, taskId)
	if result != nil {
		return result
	}

	prev := task.Status
	task.Remarks = feedback
	task.RecordTransition(caller.UserId, prev, statemachine.TaskNeedsRevision)
	if err := ts.taskRepo.UpdateTask(c, task); err != nil {
		return failTask("Failed to request modifications: %v", err)
	}

	if assignee, err := ts.userRepo.GetUserById(c, task.AssignedTo); err == nil {
		ts.dispatcher.Enqueue(notify.TaskRevisionMail(assignee.Email, assignee.Username, task.Title, feedback))
	}
	return &model.TaskResult{Success: true, Message: "Requested task modifications!", Task: task}
}

// loadTaskForReview fetches the task and its project and verifies the
// caller can review it: project manager, assigned lead, or lead of one of
// the project's teams. Returns a failure result when the caller cannot.
func (ts *TaskService) loadTaskForReview(c context.Context, caller *model.UserInfo, taskId string) (*model.Task, *model.Project, *model.TaskResult) {
	if !id.IsValid(taskId) {
		return nil, nil, failTask("Invalid task ID")
	}

	task, err := ts.taskRepo.GetTaskById(c, taskId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, failTask("Task not found")
		}
		return nil, nil, failTask("Failed to load task: %v", err)
	}

	project, err := ts.projectRepo.GetProjectById(c, task.ProjectId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, failTask("Project not found")
		}
		return nil, nil, failTask("Failed to load project: %v", err)
	}

	if ts.access.IsProjectManager(project, caller.UserId) || ts.access.IsProjectLead(project, caller.UserId) {
		return task, project, nil
	}

	teams, err := ts.teamRepo.ListByProject(c, task.ProjectId)
	if err != nil {
		return nil, nil, failTask("Failed to load teams: %v", err)
	}
	for _, team := range teams {
		if ts.access.IsTeamLead(team, caller.UserId) {
			return task, project, nil
		}
	}
	return nil, nil, failTask("Only a Project Manager or Team Lead can review tasks.")
}

// DeleteTask removes a task. Only its creator or assignee may delete it.
func (ts *TaskService) DeleteTask(c context.Context, callerId, taskId string) *model.TaskResult {
	if !id.IsValid(taskId) {
		return failTask("Invalid task ID")
	}

	task, err := ts.taskRepo.GetTaskById(c, taskId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return failTask("Task not found")
		}
		return failTask("Failed to delete task: %v", err)
	}
	if task.CreatedBy != callerId && task.AssignedTo != callerId {
		return failTask("Access Denied: Only the task creator or assignee can delete this task.")
	}

	if err := ts.taskRepo.DeleteTask(c, taskId); err != nil {
		return failTask("Failed to delete task: %v", err)
	}
	return &model.TaskResult{Success: true, Message: "Task deleted successfully", Task: task}
}

func (ts *TaskService) GetTask(c context.Context, taskId string) (*model.Task, error) {
	if !id.IsValid(taskId) {
		return nil, errors.New("invalid task ID")
	}
	task, err := ts.taskRepo.GetTaskById(c, taskId)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (ts *TaskService) ListByProject(c context.Context, projectId string) ([]*model.Task, error) {
	if !id.IsValid(projectId) {
		return nil, errors.New("invalid project ID")
	}
	return ts.taskRepo.ListByProject(c, projectId)
}

func (ts *TaskService) ListByAssignee(c context.Context, userId string) ([]*model.Task, error) {
	return ts.taskRepo.ListByAssignee(c, userId)
}

// ListForUser returns the caller's default task view: managers and leads
// see the tasks they created, members see the tasks assigned to them.
func (ts *TaskService) ListForUser(c context.Context, caller *model.UserInfo) ([]*model.Task, error) {
	if caller.Role == model.RoleTeamMember {
		return ts.taskRepo.ListByAssignee(c, caller.UserId)
	}
	return ts.taskRepo.ListByCreator(c, caller.UserId)
}
