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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ITaskRepository interface {
	CreateTask(c context.Context, task *model.Task) error
	GetTaskById(c context.Context, taskId string) (*model.Task, error)
	UpdateTask(c context.Context, task *model.Task) error
	ListByProject(c context.Context, projectId string) ([]*model.Task, error)
	ListByAssignee(c context.Context, userId string) ([]*model.Task, error)
	ListByCreator(c context.Context, userId string) ([]*model.Task, error)
	DeleteTask(c context.Context, taskId string) error
	DeleteByProject(c context.Context, projectId string) error
}

type TaskRepo struct {
	ctx        *ctx.Context
	collection *mongo.Collection
}

func NewTaskRepo(appCtx *ctx.Context) ITaskRepository {
	return &TaskRepo{
		ctx:        appCtx,
		collection: appCtx.Mongo.GetCollection(consts.CollectionTask),
	}
}

func (tr *TaskRepo) CreateTask(c context.Context, task *model.Task) error {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := tr.collection.InsertOne(c, task); err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (tr *TaskRepo) GetTaskById(c context.Context, taskId string) (*model.Task, error) {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	var task model.Task
	err := tr.collection.FindOne(c, bson.M{"_id": taskId}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// UpdateTask persists the mutable fields of a task, including the full
// history slice, in one write.
func (tr *TaskRepo) UpdateTask(c context.Context, task *model.Task) error {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	task.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"title":       task.Title,
			"description": task.Description,
			"assignedTo":  task.AssignedTo,
			"status":      task.Status,
			"priority":    task.Priority,
			"dueDate":     task.DueDate,
			"attachments": task.Attachments,
			"history":     task.History,
			"remarks":     task.Remarks,
			"updatedAt":   task.UpdatedAt,
		},
	}

	result, err := tr.collection.UpdateOne(c, bson.M{"_id": task.Id}, update)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (tr *TaskRepo) ListByProject(c context.Context, projectId string) ([]*model.Task, error) {
	return tr.find(c, bson.M{"projectId": projectId})
}

func (tr *TaskRepo) ListByAssignee(c context.Context, userId string) ([]*model.Task, error) {
	return tr.find(c, bson.M{"assignedTo": userId})
}

func (tr *TaskRepo) ListByCreator(c context.Context, userId string) ([]*model.Task, error) {
	return tr.find(c, bson.M{"createdBy": userId})
}

func (tr *TaskRepo) find(c context.Context, filter bson.M) ([]*model.Task, error) {
	c, cancel := context.WithTimeout(c, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := tr.collection.Find(c, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(c)

	var tasks []*model.Task
	if err := cursor.All(c, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

func (tr *TaskRepo) DeleteTask(c context.Context, taskId string) error {
	c, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()

	result, err := tr.collection.DeleteOne(c, bson.M{"_id": taskId})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (tr *TaskRepo) DeleteByProject(c context.Context, projectId string) error {
	c, cancel := context.WithTimeout(c, 10*time.Second)
	defer cancel()

	if _, err := tr.collection.DeleteMany(c, bson.M{"projectId": projectId}); err != nil {
		return fmt.Errorf("failed to delete project tasks: %w", err)
	}
	return nil
}
