package service

import (
	"context"
	"testing"

	"github.com/go-stride/stride/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTeam_RequiresAssignedLead(t *testing.T) {
	e := newEnv()
	defer e.dispatcher.Close()
	ctx := context.Background()

	manager := e.addUser("meredith", model.RoleProjectManager)
	assigned := e.addUser("logan", model.RoleTeamLead)
	unassigned := e.addUser("riley", model.RoleTeamLead)

	project, err := e.projectSvc.CreateProject(ctx, manager, &model.CreateProjectReq{Title: "Billing"})
	require.NoError(t, err)
	require.True(t, e.projectSvc.AssignTeamLeads(ctx, manager.UserId, project.Id, &model.AssignTeamLeadsReq{
		TeamLeads: []model.LeadAssignment{{TeamLeadId: assigned.UserId, LeadRole: "Backend"}},
	}).Success)

	// holding the Team_Lead role is not enough; the project must list you
	result := e.teamSvc.CreateTeam(ctx, unassigned.UserId, &model.CreateTeamReq{ProjectId: project.Id, TeamName: "Core"})
	assert.False(t, result.Success)

	result = e.teamSvc.CreateTeam(ctx, assigned.UserId, &model.CreateTeamReq{ProjectId: project.Id, TeamName: "Core"})
	require.True(t, result.Success, result.Message)
	assert.Equal(t, assigned.UserId, result.Team.LeadId)

	project, err = e.projects.GetProjectById(ctx, project.Id)
	require.NoError(t, err)
	assert.Contains(t, project.Teams, result.Team.Id)
}

func TestAddMembers_LeadOnlyAppendsWithoutDedup(t *testing.T) {
	e := newEnv()
	defer e.dispatcher.Close()
	ctx := context.Background()

	_, lead, member, _, teamId := setupProject(t, e)

	// the seeded team already holds one assignment for member
	result := e.teamSvc.AddMembers(ctx, lead.UserId, teamId, &model.AddTeamMembersReq{
		TeamMembers: []model.MemberAssignment{{TeamMemberId: member.UserId, MemberRole: "Reviewer"}},
	})
	require.True(t, result.Success, result.Message)
	assert.Len(t, result.Team.Members, 2)

	// only the owning lead may add
	result = e.teamSvc.AddMembers(ctx, member.UserId, teamId, &model.AddTeamMembersReq{
		TeamMembers: []model.MemberAssignment{{TeamMemberId: member.UserId, MemberRole: "Developer"}},
	})
	assert.False(t, result.Success)
}

func TestAddMembers_RejectsNonMemberRole(t *testing.T) {
	e := newEnv()
	defer e.dispatcher.Close()
	ctx := context.Background()

	_, lead, _, _, teamId := setupProject(t, e)
	otherLead := e.addUser("riley", model.RoleTeamLead)

	result := e.teamSvc.AddMembers(ctx, lead.UserId, teamId, &model.AddTeamMembersReq{
		TeamMembers: []model.MemberAssignment{{TeamMemberId: otherLead.UserId, MemberRole: "Developer"}},
	})
	assert.False(t, result.Success)
}
