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

	"github.com/go-stride/stride/internal/engine/model"
	"github.com/go-stride/stride/internal/engine/repo"
	"github.com/go-stride/stride/internal/pkg/notify"
	"github.com/go-stride/stride/pkg/http"
	"github.com/go-stride/stride/pkg/id"
	"github.com/go-stride/stride/pkg/log"
)

type ProjectService struct {
	projectRepo repo.IProjectRepository
	teamRepo    repo.ITeamRepository
	taskRepo    repo.ITaskRepository
	userRepo    repo.IUserRepository
	access      *AccessResolver
	dispatcher  *notify.Dispatcher
}

func NewProjectService(
	projectRepo repo.IProjectRepository,
	teamRepo repo.ITeamRepository,
	taskRepo repo.ITaskRepository,
	userRepo repo.IUserRepository,
	access *AccessResolver,
	dispatcher *notify.Dispatcher,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		access:      access,
		dispatcher:  dispatcher,
	}
}

// CreateProject creates a project owned by the caller. Only a Project
// Manager may create projects; the role check happens here, not in the
// store.
func (ps *ProjectService) CreateProject(c context.Context, caller *model.UserInfo, req *model.CreateProjectReq) (*model.Project, error) {
	if caller.Role != model.RoleProjectManager {
		return nil, errors.New(http.PermissionDenied.Msg)
	}
	if req.Title == "" {
		return nil, errors.New(http.BadRequest.Msg)
	}

	project := &model.Project{
		BaseModel:      model.BaseModel{Id: id.GetUUIDWithoutDashes()},
		Title:          req.Title,
		Description:    req.Description,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Category:       req.Category,
		ProjectManager: caller.UserId,
		TeamLeads:      []model.LeadAssignment{},
		Teams:          []string{},
		Status:         model.ProjectStatusDefault,
	}
	if err := ps.projectRepo.CreateProject(c, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (ps *ProjectService) GetProject(c context.Context, projectId string) (*model.Project, error) {
	if !id.IsValid(projectId) {
		return nil, errors.New(http.InvalidIdFormat.Msg)
	}
	project, err := ps.projectRepo.GetProjectById(c, projectId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errors.New(http.NotFound.Msg)
		}
		return nil, err
	}
	return project, nil
}

// ListProjects returns the projects where the caller has standing:
// managers see the projects they own, leads the projects that list them,
// members the projects behind their team memberships.
func (ps *ProjectService) ListProjects(c context.Context, caller *model.UserInfo) ([]*model.Project, error) {
	switch caller.Role {
	case model.RoleProjectManager:
		return ps.projectRepo.ListByManager(c, caller.UserId)
	case model.RoleTeamLead:
		return ps.ListLeadProjects(c, caller.UserId)
	case model.RoleTeamMember:
		return ps.ListMemberProjects(c, caller.UserId)
	}
	return nil, errors.New(http.InvalidRole.Msg)
}

// ListLeadProjects returns the projects that list userId as a team lead.
func (ps *ProjectService) ListLeadProjects(c context.Context, userId string) ([]*model.Project, error) {
	return ps.projectRepo.ListByLead(c, userId)
}

// ListMemberProjects resolves the projects behind userId's team
// memberships.
func (ps *ProjectService) ListMemberProjects(c context.Context, userId string) ([]*model.Project, error) {
	teams, err := ps.teamRepo.ListByMember(c, userId)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(teams))
	var projectIds []string
	for _, team := range teams {
		if _, ok := seen[team.ProjectId]; ok {
			continue
		}
		seen[team.ProjectId] = struct{}{}
		projectIds = append(projectIds, team.ProjectId)
	}
	return ps.projectRepo.ListByIds(c, projectIds)
}

// AssignTeamLeads appends lead assignments to the project. Appends are
// unconditional; assigning the same lead twice records two entries.
func (ps *ProjectService) AssignTeamLeads(c context.Context, callerId, projectId string, req *model.AssignTeamLeadsReq) *model.ProjectResult {
	if !id.IsValid(projectId) {
		return &model.ProjectResult{Success: false, Message: "Invalid project ID"}
	}
	if len(req.TeamLeads) == 0 {
		return &model.ProjectResult{Success: false, Message: "No team leads provided"}
	}

	project, err := ps.projectRepo.GetProjectById(c, projectId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return &model.ProjectResult{Success: false, Message: "Project not found"}
		}
		return &model.ProjectResult{Success: false, Message: fmt.Sprintf("Failed to assign team leads: %v", err)}
	}
	if !ps.access.IsProjectManager(project, callerId) {
		return &model.ProjectResult{Success: false, Message: "Access Denied: Only the Project Manager can assign team leads."}
	}

	for _, lead := range req.TeamLeads {
		leadUser, err := ps.userRepo.GetUserById(c, lead.TeamLeadId)
		if err != nil {
			return &model.ProjectResult{Success: false, Message: fmt.Sprintf("Team lead not found: %s", lead.TeamLeadId)}
		}
		if leadUser.Role != model.RoleTeamLead {
			return &model.ProjectResult{Success: false, Message: fmt.Sprintf("User %s is not a Team Lead", leadUser.Username)}
		}
	}

	if err := ps.projectRepo.AddTeamLeads(c, projectId, req.TeamLeads); err != nil {
		return &model.ProjectResult{Success: false, Message: fmt.Sprintf("Failed to assign team leads: %v", err)}
	}

	for _, lead := range req.TeamLeads {
		leadUser, err := ps.userRepo.GetUserById(c, lead.TeamLeadId)
		if err != nil {
			log.Warnw("assigned lead vanished before notification", "leadId", lead.TeamLeadId)
			continue
		}
		ps.dispatcher.Enqueue(notify.LeadAssignedMail(leadUser.Email, leadUser.Username, project.Title, lead.LeadRole))
	}

	project, err = ps.projectRepo.GetProjectById(c, projectId)
	if err != nil {
		return &model.ProjectResult{Success: false, Message: fmt.Sprintf("Failed to reload project: %v", err)}
	}
	return &model.ProjectResult{Success: true, Message: "Team leads assigned successfully", Project: project}
}

// DeleteProject removes the project and cascades to its teams and tasks.
// Only the owning manager may delete.
func (ps *ProjectService) DeleteProject(c context.Context, caller *model.UserInfo, projectId string) error {
	if !id.IsValid(projectId) {
		return errors.New(http.InvalidIdFormat.Msg)
	}
	project, err := ps.projectRepo.GetProjectById(c, projectId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errors.New(http.NotFound.Msg)
		}
		return err
	}
	if !ps.access.IsProjectManager(project, caller.UserId) {
		return errors.New(http.PermissionDenied.Msg)
	}

	if err := ps.teamRepo.DeleteByProject(c, projectId); err != nil {
		return err
	}
	if err := ps.taskRepo.DeleteByProject(c, projectId); err != nil {
		return err
	}
	if err := ps.projectRepo.DeleteProject(c, projectId); err != nil {
		return err
	}

	if caller.Email != "" {
		ps.dispatcher.Enqueue(notify.ProjectDeletedMail(caller.Email, project.Title))
	}
	return nil
}

// LeaveProject removes the caller from the project's lead list and from
// every team under the project. A team emptied by the departure is
// deleted. Fails when the caller had no standing to begin with.
func (ps *ProjectService) LeaveProject(c context.Context, caller *model.UserInfo, projectId string) error {
	if !id.IsValid(projectId) {
		return errors.New(http.InvalidIdFormat.Msg)
	}
	project, err := ps.projectRepo.GetProjectById(c, projectId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errors.New(http.NotFound.Msg)
		}
		return err
	}

	modified := false
	if project.HasLead(caller.UserId) {
		if err := ps.projectRepo.RemoveTeamLead(c, projectId, caller.UserId); err != nil {
			return err
		}
		modified = true
	}

	teams, err := ps.teamRepo.ListByProject(c, projectId)
	if err != nil {
		return err
	}
	for _, team := range teams {
		if !team.HasMember(caller.UserId) {
			continue
		}
		modified = true
		if len(team.Members) == 1 {
			if err := ps.teamRepo.DeleteTeam(c, team.Id); err != nil {
				return err
			}
			if err := ps.projectRepo.RemoveTeam(c, projectId, team.Id); err != nil {
				return err
			}
			continue
		}
		if err := ps.teamRepo.RemoveMember(c, team.Id, caller.UserId); err != nil {
			return err
		}
	}

	if !modified {
		return errors.New("user is not part of this project")
	}

	if caller.Email != "" {
		ps.dispatcher.Enqueue(notify.ProjectLeftMail(caller.Email, project.Title))
	}
	return nil
}
