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

	"github.com/go-stride/stride/internal/engine/model"
	"github.com/go-stride/stride/internal/engine/repo"
)

// AccessResolver answers authorization questions about a user's standing
// within a project. Role alone is never enough; a Team Lead only has lead
// powers inside projects that list them, and membership is derived from the
// project's teams.
type AccessResolver struct {
	teamRepo repo.ITeamRepository
}

func NewAccessResolver(teamRepo repo.ITeamRepository) *AccessResolver {
	return &AccessResolver{teamRepo: teamRepo}
}

// IsProjectManager reports whether userId owns the project.
func (ar *AccessResolver) IsProjectManager(project *model.Project, userId string) bool {
	return project.IsManager(userId)
}

// IsProjectLead reports whether userId appears in the project's lead
// assignments.
func (ar *AccessResolver) IsProjectLead(project *model.Project, userId string) bool {
	return project.HasLead(userId)
}

// IsTeamLead reports whether userId owns the team.
func (ar *AccessResolver) IsTeamLead(team *model.Team, userId string) bool {
	return team.LeadId == userId
}

// IsProjectMember reports whether userId belongs to any team under the
// project.
func (ar *AccessResolver) IsProjectMember(c context.Context, projectId, userId string) (bool, error) {
	teams, err := ar.teamRepo.ListByProject(c, projectId)
	if err != nil {
		return false, err
	}
	for _, team := range teams {
		if team.HasMember(userId) {
			return true, nil
		}
	}
	return false, nil
}

// CanTouchProject reports whether userId has any standing in the project:
// manager, lead, or member of one of its teams.
func (ar *AccessResolver) CanTouchProject(c context.Context, project *model.Project, userId string) (bool, error) {
	if ar.IsProjectManager(project, userId) || ar.IsProjectLead(project, userId) {
		return true, nil
	}
	return ar.IsProjectMember(c, project.Id, userId)
}
