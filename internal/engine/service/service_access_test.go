package service

import (
	"context"
	"testing"

	"github.com/go-stride/stride/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessResolver_StandingChecks(t *testing.T) {
	e := newEnv()
	defer e.dispatcher.Close()
	ctx := context.Background()

	manager, lead, member, projectId, teamId := setupProject(t, e)
	outsider := e.addUser("sam", model.RoleTeamMember)

	access := NewAccessResolver(e.teams)
	project, err := e.projects.GetProjectById(ctx, projectId)
	require.NoError(t, err)
	team, err := e.teams.GetTeamById(ctx, teamId)
	require.NoError(t, err)

	assert.True(t, access.IsProjectManager(project, manager.UserId))
	assert.False(t, access.IsProjectManager(project, lead.UserId))

	assert.True(t, access.IsProjectLead(project, lead.UserId))
	assert.False(t, access.IsProjectLead(project, member.UserId))

	assert.True(t, access.IsTeamLead(team, lead.UserId))
	assert.False(t, access.IsTeamLead(team, member.UserId))

	isMember, err := access.IsProjectMember(ctx, projectId, member.UserId)
	require.NoError(t, err)
	assert.True(t, isMember)

	isMember, err = access.IsProjectMember(ctx, projectId, outsider.UserId)
	require.NoError(t, err)
	assert.False(t, isMember)

	for _, userId := range []string{manager.UserId, lead.UserId, member.UserId} {
		ok, err := access.CanTouchProject(ctx, project, userId)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := access.CanTouchProject(ctx, project, outsider.UserId)
	require.NoError(t, err)
	assert.False(t, ok)
}
