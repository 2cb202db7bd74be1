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

type TeamService struct {
	teamRepo    repo.ITeamRepository
	projectRepo repo.IProjectRepository
	userRepo    repo.IUserRepository
	access      *AccessResolver
	dispatcher  *notify.Dispatcher
}

func NewTeamService(
	teamRepo repo.ITeamRepository,
	projectRepo repo.IProjectRepository,
	userRepo repo.IUserRepository,
	access *AccessResolver,
	dispatcher *notify.Dispatcher,
) *TeamService {
	return &TeamService{
		teamRepo:    teamRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		access:      access,
		dispatcher:  dispatcher,
	}
}

// CreateTeam creates a team under a project, owned by the calling lead.
// The caller must appear in the project's lead assignments; holding the
// Team_Lead role alone is not enough.
func (ts *TeamService) CreateTeam(c context.Context, callerId string, req *model.CreateTeamReq) *model.TeamResult {
	if !id.IsValid(req.ProjectId) {
		return &model.TeamResult{Success: false, Message: "Invalid project ID"}
	}
	if req.TeamName == "" {
		return &model.TeamResult{Success: false, Message: "Team name is required"}
	}

	project, err := ts.projectRepo.GetProjectById(c, req.ProjectId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return &model.TeamResult{Success: false, Message: "Project not found"}
		}
		return &model.TeamResult{Success: false, Message: fmt.Sprintf("Failed to create team: %v", err)}
	}
	if !ts.access.IsProjectLead(project, callerId) {
		return &model.TeamResult{Success: false, Message: "Access Denied: Only an assigned Team Lead can create teams."}
	}

	team := &model.Team{
		BaseModel:   model.BaseModel{Id: id.GetUUIDWithoutDashes()},
		ProjectId:   req.ProjectId,
		LeadId:      callerId,
		TeamName:    req.TeamName,
		Description: req.Description,
		Members:     []model.MemberAssignment{},
	}
	if err := ts.teamRepo.CreateTeam(c, team); err != nil {
		return &model.TeamResult{Success: false, Message: fmt.Sprintf("Failed to create team: %v", err)}
	}
	if err := ts.projectRepo.AddTeam(c, req.ProjectId, team.Id); err != nil {
		return &model.TeamResult{Success: false, Message: fmt.Sprintf("Failed to register team on project: %v", err)}
	}
	return &model.TeamResult{Success: true, Message: "Team created successfully", Team: team}
}

// AddMembers appends member assignments unconditionally and mails each
// added member. Only the team's lead may add members.
func (ts *TeamService) AddMembers(c context.Context, callerId, teamId string, req *model.AddTeamMembersReq) *model.TeamResult {
	if !id.IsValid(teamId) {
		return &model.TeamResult{Success: false, Message: "Invalid team ID"}
	}
	if len(req.TeamMembers) == 0 {
		return &model.TeamResult{Success: false, Message: "No team members provided"}
	}

	team, err := ts.teamRepo.GetTeamById(c, teamId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return &model.TeamResult{Success: false, Message: "Team not found"}
		}
		return &model.TeamResult{Success: false, Message: fmt.Sprintf("Failed to add members: %v", err)}
	}
	if !ts.access.IsTeamLead(team, callerId) {
		return &model.TeamResult{Success: false, Message: "Access Denied: Only the Team Lead can add members."}
	}

	for _, member := range req.TeamMembers {
		memberUser, err := ts.userRepo.GetUserById(c, member.TeamMemberId)
		if err != nil {
			return &model.TeamResult{Success: false, Message: fmt.Sprintf("Team member not found: %s", member.TeamMemberId)}
		}
		if memberUser.Role != model.RoleTeamMember {
			return &model.TeamResult{Success: false, Message: fmt.Sprintf("User %s is not a Team Member", memberUser.Username)}
		}
	}

	if err := ts.teamRepo.AddMembers(c, teamId, req.TeamMembers); err != nil {
		return &model.TeamResult{Success: false, Message: fmt.Sprintf("Failed to add members: %v", err)}
	}

	for _, member := range req.TeamMembers {
		memberUser, err := ts.userRepo.GetUserById(c, member.TeamMemberId)
		if err != nil {
			log.Warnw("added member vanished before notification", "memberId", member.TeamMemberId)
			continue
		}
		ts.dispatcher.Enqueue(notify.MemberAddedMail(memberUser.Email, memberUser.Username, team.TeamName, member.MemberRole))
	}

	team, err = ts.teamRepo.GetTeamById(c, teamId)
	if err != nil {
		return &model.TeamResult{Success: false, Message: fmt.Sprintf("Failed to reload team: %v", err)}
	}
	return &model.TeamResult{Success: true, Message: "Members added successfully", Team: team}
}

func (ts *TeamService) GetTeam(c context.Context, teamId string) (*model.Team, error) {
	if !id.IsValid(teamId) {
		return nil, errors.New(http.InvalidIdFormat.Msg)
	}
	team, err := ts.teamRepo.GetTeamById(c, teamId)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errors.New(http.NotFound.Msg)
		}
		return nil, err
	}
	return team, nil
}

func (ts *TeamService) ListByProject(c context.Context, projectId string) ([]*model.Team, error) {
	if !id.IsValid(projectId) {
		return nil, errors.New(http.InvalidIdFormat.Msg)
	}
	return ts.teamRepo.ListByProject(c, projectId)
}

func (ts *TeamService) ListByLead(c context.Context, leadId string) ([]*model.Team, error) {
	return ts.teamRepo.ListByLead(c, leadId)
}
