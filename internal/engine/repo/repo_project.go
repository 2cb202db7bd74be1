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

package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-stride/stride/internal/engine/consts"
	"github.com/go-stride/stride/internal/engine/model"
	"github.com/go-stride/stride/pkg/ctx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type IProjectRepository interface {
	CreateProject(c context.Context, project *model.Project) error
	GetProjectById(c context.Context, projectId string) (*model.Project, error)
	ListByManager(c context.Context, managerId string) ([]*model.Project, error)
	ListByLead(c context.Context, leadId string) ([]*model.Project, error)
	ListByIds(c context.Context, projectIds []string) ([]*model.Project, error)
	AddTeamLeads(c context.Context, projectId string, leads []model.LeadAssignment) error
	RemoveTeamLead(c context.Context, projectId, leadId string) error
	AddTeam(c context.Context, projectId, teamId string) error
	RemoveTeam(c context.Context, projectId, teamId string) error
	DeleteProject(c context.Context, projectId string) error
}

type ProjectRepo struct {
	ctx        *ctx.Context
	collection *mongo.Collection
}

func NewProjectRepo(appCtx *ctx.Context) IProjectRepository {
	return &ProjectRepo{
		ctx:        appCtx,
		collection: appCtx.Mongo.GetCollection(consts.CollectionProject),
	}
}

func (pr *ProjectRepo) CreateProject(c context.Context, project *model.Project) error {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	if _, err := pr.collection.InsertOne(c, project); err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

func (pr *ProjectRepo) GetProjectById(c context.Context, projectId string) (*model.Project, error) {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	var project model.Project
	err := pr.collection.FindOne(c, bson.M{"_id": projectId}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

func (pr *ProjectRepo) ListByManager(c context.Context, managerId string) ([]*model.Project, error) {
	return pr.find(c, bson.M{"projectManager": managerId})
}

func (pr *ProjectRepo) ListByLead(c context.Context, leadId string) ([]*model.Project, error) {
	return pr.find(c, bson.M{"teamLeads.teamLeadId": leadId})
}

func (pr *ProjectRepo) ListByIds(c context.Context, projectIds []string) ([]*model.Project, error) {
	if len(projectIds) == 0 {
		return nil, nil
	}
	return pr.find(c, bson.M{"_id": bson.M{"$in": projectIds}})
}

func (pr *ProjectRepo) find(c context.Context, filter bson.M) ([]*model.Project, error) {
	c, cancel := context.WithTimeout(c, 10*time.Second)
	defer cancel()

	cursor, err := pr.collection.Find(c, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer cursor.Close(c)

	var projects []*model.Project
	if err := cursor.All(c, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

// AddTeamLeads appends each assignment as-is. Duplicate lead ids are
// allowed, matching the append-only semantics of project staffing.
func (pr *ProjectRepo) AddTeamLeads(c context.Context, projectId string, leads []model.LeadAssignment) error {
	update := bson.M{
		"$push": bson.M{"teamLeads": bson.M{"$each": leads}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	return pr.updateOne(c, projectId, update)
}

func (pr *ProjectRepo) RemoveTeamLead(c context.Context, projectId, leadId string) error {
	update := bson.M{
		"$pull": bson.M{"teamLeads": bson.M{"teamLeadId": leadId}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	return pr.updateOne(c, projectId, update)
}

func (pr *ProjectRepo) AddTeam(c context.Context, projectId, teamId string) error {
	update := bson.M{
		"$push": bson.M{"teams": teamId},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	return pr.updateOne(c, projectId, update)
}

func (pr *ProjectRepo) RemoveTeam(c context.Context, projectId, teamId string) error {
	update := bson.M{
		"$pull": bson.M{"teams": teamId},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	return pr.updateOne(c, projectId, update)
}

func (pr *ProjectRepo) updateOne(c context.Context, projectId string, update bson.M) error {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	result, err := pr.collection.UpdateOne(c, bson.M{"_id": projectId}, update)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (pr *ProjectRepo) DeleteProject(c context.Context, projectId string) error {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	result, err := pr.collection.DeleteOne(c, bson.M{"_id": projectId})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
