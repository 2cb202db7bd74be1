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

package model

import (
	"time"

	"github.com/go-stride/stride/pkg/statemachine"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// HistoryEntry records one status transition. OldStatus is the status the
// task held before the transition was applied.
type HistoryEntry struct {
	UpdatedBy string                  `bson:"updatedBy" json:"updatedBy"`
	UpdatedAt time.Time               `bson:"updatedAt" json:"updatedAt"`
	OldStatus statemachine.TaskStatus `bson:"oldStatus" json:"oldStatus"`
	NewStatus statemachine.TaskStatus `bson:"newStatus" json:"newStatus"`
}

type Task struct {
	BaseModel   `bson:",inline"`
	Title       string                  `bson:"title" json:"title"`
	Description string                  `bson:"description" json:"description"`
	ProjectId   string                  `bson:"projectId" json:"projectId"`
	CreatedBy   string                  `bson:"createdBy" json:"createdBy"`
	AssignedTo  string                  `bson:"assignedTo" json:"assignedTo"`
	Status      statemachine.TaskStatus `bson:"status" json:"status"`
	Priority    Priority                `bson:"priority" json:"priority"`
	DueDate     time.Time               `bson:"dueDate" json:"dueDate"`
	Attachments []string                `bson:"attachments" json:"attachments"`
	History     []HistoryEntry          `bson:"history" json:"history"`
	Remarks     string                  `bson:"remarks" json:"remarks"`
}

// RecordTransition appends a history entry and moves the task to next.
// Callers pass the status the task held before any mutation.
func (t *Task) RecordTransition(userId string, prev, next statemachine.TaskStatus) {
	t.History = append(t.History, HistoryEntry{
		UpdatedBy: userId,
		UpdatedAt: time.Now(),
		OldStatus: prev,
		NewStatus: next,
	})
	t.Status = next
}

// AssignTaskReq creates a task assigned to a user within a project.
type AssignTaskReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ProjectId   string   `json:"projectId"`
	AssignedTo  string   `json:"assignedTo"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"dueDate"`
}

type UpdateTaskStatusReq struct {
	Status statemachine.TaskStatus `json:"status"`
}

type ApproveTaskReq struct {
	Approved bool   `json:"approved"`
	Remarks  string `json:"remarks"`
}

type RejectTaskReq struct {
	Remarks string `json:"remarks"`
}

type ReviseTaskReq struct {
	Remarks string `json:"remarks"`
}

type AttachmentReq struct {
	Attachment string `json:"attachment"`
}

// TaskResult is the structured outcome envelope for task mutations. A
// refused precondition yields Success=false with a Message rather than an
// error, so callers can forward the verdict verbatim.
type TaskResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Task    *Task  `json:"task"`
}
