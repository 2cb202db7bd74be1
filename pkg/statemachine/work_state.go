// Copyright 2025 Stride Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package statemachine

import "slices"

// TaskStatus is the lifecycle state of a work item.
type TaskStatus string

const (
	TaskToDo            TaskStatus = "To Do"
	TaskInProgress      TaskStatus = "In Progress"
	TaskDone            TaskStatus = "Done"
	TaskCompleted       TaskStatus = "Completed"
	TaskPendingApproval TaskStatus = "Pending Approval"
	TaskUnderReview     TaskStatus = "Under Review"
	TaskRejected        TaskStatus = "Rejected"
	TaskNeedsRevision   TaskStatus = "Needs Revision"
)

// allStatuses is the closed set of lifecycle states.
var allStatuses = []TaskStatus{
	TaskToDo, TaskInProgress, TaskDone, TaskCompleted,
	TaskPendingApproval, TaskUnderReview, TaskRejected, TaskNeedsRevision,
}

// memberStatuses is the allow-list a Team Member may set directly via a
// status update.
var memberStatuses = []TaskStatus{
	TaskToDo, TaskInProgress, TaskCompleted, TaskPendingApproval, TaskUnderReview, TaskDone,
}

// IsValid reports whether ts is one of the lifecycle states.
func (ts TaskStatus) IsValid() bool {
	return slices.Contains(allStatuses, ts)
}

// IsTerminal reports whether the state ends the lifecycle. Rejected and
// Needs Revision are recoverable and therefore not terminal.
func (ts TaskStatus) IsTerminal() bool {
	return ts == TaskCompleted
}

// IsReviewable reports whether an approver decision applies to the state.
func (ts TaskStatus) IsReviewable() bool {
	return ts == TaskPendingApproval || ts == TaskUnderReview || ts == TaskDone
}

// MemberCanSet reports whether a Team Member may set ts directly.
func (ts TaskStatus) MemberCanSet() bool {
	return slices.Contains(memberStatuses, ts)
}

// MemberStatuses returns the member allow-list.
func MemberStatuses() []TaskStatus {
	out := make([]TaskStatus, len(memberStatuses))
	copy(out, memberStatuses)
	return out
}

// NewTaskLifecycle builds the work-item lifecycle machine:
// To Do -> In Progress -> Done -> Pending Approval -> Under Review/Completed,
// with Rejected and Needs Revision re-entering toward In Progress.
func NewTaskLifecycle() *StateMachine[TaskStatus] {
	sm := NewWithState(TaskToDo)

	sm.Allow(TaskToDo, TaskInProgress).
		Allow(TaskInProgress, TaskDone, TaskCompleted).
		Allow(TaskDone, TaskPendingApproval, TaskInProgress).
		Allow(TaskPendingApproval, TaskUnderReview, TaskCompleted, TaskInProgress, TaskRejected, TaskNeedsRevision).
		Allow(TaskUnderReview, TaskCompleted, TaskInProgress, TaskRejected, TaskNeedsRevision).
		Allow(TaskRejected, TaskInProgress, TaskToDo).
		Allow(TaskNeedsRevision, TaskInProgress, TaskToDo)

	return sm
}
