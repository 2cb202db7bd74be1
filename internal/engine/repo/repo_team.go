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

type ITeamRepository interface {
	CreateTeam(c context.Context, team *model.Team) error
	GetTeamById(c context.Context, teamId string) (*model.Team, error)
	ListByProject(c context.Context, projectId string) ([]*model.Team, error)
	ListByLead(c context.Context, leadId string) ([]*model.Team, error)
	ListByMember(c context.Context, memberId string) ([]*model.Team, error)
	AddMembers(c context.Context, teamId string, members []model.MemberAssignment) error
	RemoveMember(c context.Context, teamId, memberId string) error
	DeleteTeam(c context.Context, teamId string) error
	DeleteByProject(c context.Context, projectId string) error
}

type TeamRepo struct {
	ctx        *ctx.Context
	collection *mongo.Collection
}

func NewTeamRepo(appCtx *ctx.Context) ITeamRepository {
	return &TeamRepo{
		ctx:        appCtx,
		collection: appCtx.Mongo.GetCollection(consts.CollectionTeam),
	}
}

func (tr *TeamRepo) CreateTeam(c context.Context, team *model.Team) error {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	now := time.Now()
	team.CreatedAt = now
	team.UpdatedAt = now

	if _, err := tr.collection.InsertOne(c, team); err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}
	return nil
}

func (tr *TeamRepo) GetTeamById(c context.Context, teamId string) (*model.Team, error) {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	var team model.Team
	err := tr.collection.FindOne(c, bson.M{"_id": teamId}).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &team, nil
}

func (tr *TeamRepo) ListByProject(c context.Context, projectId string) ([]*model.Team, error) {
	return tr.find(c, bson.M{"projectId": projectId})
}

func (tr *TeamRepo) ListByLead(c context.Context, leadId string) ([]*model.Team, error) {
	return tr.find(c, bson.M{"leadId": leadId})
}

func (tr *TeamRepo) ListByMember(c context.Context, memberId string) ([]*model.Team, error) {
	return tr.find(c, bson.M{"members.teamMemberId": memberId})
}

func (tr *TeamRepo) find(c context.Context, filter bson.M) ([]*model.Team, error) {
	c, cancel := context.WithTimeout(c, 10*time.Second)
	defer cancel()

	cursor, err := tr.collection.Find(c, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer cursor.Close(c)

	var teams []*model.Team
	if err := cursor.All(c, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}
	return teams, nil
}

// AddMembers appends assignments without deduplication.
func (tr *TeamRepo) AddMembers(c context.Context, teamId string, members []model.MemberAssignment) error {
	update := bson.M{
		"$push": bson.M{"members": bson.M{"$each": members}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	return tr.updateOne(c, teamId, update)
}

func (tr *TeamRepo) RemoveMember(c context.Context, teamId, memberId string) error {
	update := bson.M{
		"$pull": bson.M{"members": bson.M{"teamMemberId": memberId}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	return tr.updateOne(c, teamId, update)
}

func (tr *TeamRepo) updateOne(c context.Context, teamId string, update bson.M) error {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	result, err := tr.collection.UpdateOne(c, bson.M{"_id": teamId}, update)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (tr *TeamRepo) DeleteTeam(c context.Context, teamId string) error {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	result, err := tr.collection.DeleteOne(c, bson.M{"_id": teamId})
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (tr *TeamRepo) DeleteByProject(c context.Context, projectId string) error {
	c, cancel := context.WithTimeout(c, 10*time.Second)
	defer cancel()

	if _, err := tr.collection.DeleteMany(c, bson.M{"projectId": projectId}); err != nil {
		return fmt.Errorf("failed to delete project teams: %w", err)
	}
	return nil
}
