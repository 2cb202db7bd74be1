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
	"testing"

	"github.com/go-stride/stride/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject_ManagerOnly(t *testing.T) {
	e := newEnv()
	defer e.dispatcher.Close()
	ctx := context.Background()

	manager := e.addUser("meredith", model.RoleProjectManager)
	lead := e.addUser("logan", model.RoleTeamLead)

	project, err := e.projectSvc.CreateProject(ctx, manager, &model.CreateProjectReq{Title: "Billing"})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusDefault, project.Status)
	assert.Equal(t, manager.UserId, project.ProjectManager)
	assert.Empty(t, project.TeamLeads)

	_, err = e.projectSvc.CreateProject(ctx, lead, &model.CreateProjectReq{Title: "Nope"})
	assert.Error(t, err)
}

// Assigning the same lead twice appends two entries; the list carries no
// duplicate detection.
func TestAssignTeamLeads_AppendsWithoutDedup(t *testing.T) {
	e := newEnv()
	defer e.dispatcher.Close()
	ctx := context.Background()

	manager := e.addUser("meredith", model.RoleProjectManager)
	lead := e.addUser("logan", model.RoleTeamLead)
	project, err := e.projectSvc.CreateProject(ctx, manager, &model.CreateProjectReq{Title: "Billing"})
	require.NoError(t, err)

	req := &model.AssignTeamLeadsReq{TeamLeads: []model.LeadAssignment{{TeamLeadId: lead.UserId, LeadRole: "Backend"}}}
	require.True(t, e.projectSvc.AssignTeamLeads(ctx, manager.UserId, project.Id, req).Success)
	result := e.projectSvc.AssignTeamLeads(ctx, manager.UserId, project.Id, req)
	require.True(t, result.Success, result.Message)

	assert.Len(t, result.Project.TeamLeads, 2)
}

func TestAssignTeamLeads_ManagerOnlyAndRoleChecked(t *testing.T) {
	e := newEnv()
	defer e.dispatcher.Close()
	ctx := context.Background()

	manager := e.addUser("meredith", model.RoleProjectManager)
	lead := e.addUser("logan", model.RoleTeamLead)
	member := e.addUser("morgan", model.RoleTeamMember)
	project, err := e.projectSvc.CreateProject(ctx, manager, &model.CreateProjectReq{Title: "Billing"})
	require.NoError(t, err)

	result := e.projectSvc.AssignTeamLeads(ctx, lead.UserId, project.Id, &model.AssignTeamLeadsReq{
		TeamLeads: []model.LeadAssignment{{TeamLeadId: lead.UserId, LeadRole: "Backend"}},
	})
	assert.False(t, result.Success)

	result = e.projectSvc.AssignTeamLeads(ctx, manager.UserId, project.Id, &model.AssignTeamLeadsReq{
		TeamLeads: []model.LeadAssignment{{TeamLeadId: member.UserId, LeadRole: "Backend"}},
	})
	assert.False(t, result.Success)
}

func TestDeleteProject_CascadesAndChecksOwnership(t *testing.T) {
	e := newEnv()
	defer e.dispatcher.Close()
	ctx := context.Background()

	manager, lead, member, projectId, teamId := setupProject(t, e)
	task := assignMemberTask(t, e, lead, member, projectId)

	err := e.projectSvc.DeleteProject(ctx, lead, projectId)
	assert.Error(t, err)

	require.NoError(t, e.projectSvc.DeleteProject(ctx, manager, projectId))

	_, err = e.projects.GetProjectById(ctx, projectId)
	assert.Error(t, err)
	_, err = e.teams.GetTeamById(ctx, teamId)
	assert.Error(t, err)
	_, err = e.tasks.GetTaskById(ctx, task.Id)
	assert.Error(t, err)
}

func TestLeaveProject_RemovesStandingAndDeletesEmptiedTeam(t *testing.T) {
	e := newEnv()
	defer e.dispatcher.Close()
	ctx := context.Background()

	_, lead, member, projectId, teamId := setupProject(t, e)

	// the sole member leaving empties and deletes the team
	require.NoError(t, e.projectSvc.LeaveProject(ctx, member, projectId))
	_, err := e.teams.GetTeamById(ctx, teamId)
	assert.Error(t, err)

	project, err := e.projects.GetProjectById(ctx, projectId)
	require.NoError(t, err)
	assert.NotContains(t, project.Teams, teamId)

	// a lead leaving drops out of the assignment list
	require.NoError(t, e.projectSvc.LeaveProject(ctx, lead, projectId))
	project, err = e.projects.GetProjectById(ctx, projectId)
	require.NoError(t, err)
	assert.False(t, project.HasLead(lead.UserId))

	// no standing left, a second leave fails
	assert.Error(t, e.projectSvc.LeaveProject(ctx, lead, projectId))
}

func TestListProjects_RoleScoped(t *testing.T) {
	e := newEnv()
	defer e.dispatcher.Close()
	ctx := context.Background()

	manager, lead, member, projectId, _ := setupProject(t, e)

	for _, caller := range []*model.UserInfo{manager, lead, member} {
		projects, err := e.projectSvc.ListProjects(ctx, caller)
		require.NoError(t, err)
		require.Len(t, projects, 1, "role %s", caller.Role)
		assert.Equal(t, projectId, projects[0].Id)
	}

	stranger := e.addUser("riley", model.RoleTeamLead)
	projects, err := e.projectSvc.ListProjects(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, projects)
}
