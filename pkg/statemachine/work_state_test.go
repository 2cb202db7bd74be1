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

import "testing"

func TestTaskStatus_IsValid(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskToDo, true},
		{TaskInProgress, true},
		{TaskDone, true},
		{TaskCompleted, true},
		{TaskPendingApproval, true},
		{TaskUnderReview, true},
		{TaskRejected, true},
		{TaskNeedsRevision, true},
		{TaskStatus("Cancelled"), false},
		{TaskStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTaskStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskToDo, false},
		{TaskInProgress, false},
		{TaskDone, false},
		{TaskCompleted, true},
		{TaskPendingApproval, false},
		{TaskUnderReview, false},
		{TaskRejected, false},
		{TaskNeedsRevision, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTaskStatus_MemberCanSet(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskToDo, true},
		{TaskInProgress, true},
		{TaskCompleted, true},
		{TaskPendingApproval, true},
		{TaskUnderReview, true},
		{TaskDone, true},
		{TaskRejected, false},
		{TaskNeedsRevision, false},
		{TaskStatus("Archived"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.MemberCanSet(); got != tt.expected {
				t.Errorf("MemberCanSet() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewTaskLifecycle(t *testing.T) {
	sm := NewTaskLifecycle()

	if sm.Current() != TaskToDo {
		t.Fatalf("initial state = %v, want %v", sm.Current(), TaskToDo)
	}

	// forward path
	steps := []TaskStatus{TaskInProgress, TaskDone, TaskPendingApproval, TaskUnderReview, TaskCompleted}
	for _, s := range steps {
		if err := sm.Transit(s); err != nil {
			t.Fatalf("Transit(%v) failed: %v", s, err)
		}
	}

	// Completed is terminal
	if got := sm.GetValidNextStates(TaskCompleted); len(got) != 0 {
		t.Errorf("Completed should have no next states, got %v", got)
	}
}

func TestTaskLifecycle_ReviewBranches(t *testing.T) {
	tests := []struct {
		from    TaskStatus
		to      TaskStatus
		allowed bool
	}{
		{TaskDone, TaskPendingApproval, true},
		{TaskToDo, TaskPendingApproval, false},
		{TaskInProgress, TaskPendingApproval, false},
		{TaskPendingApproval, TaskUnderReview, true},
		{TaskUnderReview, TaskRejected, true},
		{TaskUnderReview, TaskNeedsRevision, true},
		{TaskRejected, TaskInProgress, true},
		{TaskNeedsRevision, TaskInProgress, true},
		{TaskCompleted, TaskInProgress, false},
	}

	sm := NewTaskLifecycle()
	for _, tt := range tests {
		if got := sm.CanTransit(tt.from, tt.to); got != tt.allowed {
			t.Errorf("CanTransit(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestStateMachine_Transit_Invalid(t *testing.T) {
	sm := NewTaskLifecycle()

	if err := sm.Transit(TaskCompleted); err == nil {
		t.Error("Transit(To Do -> Completed) should fail")
	}
	if sm.Current() != TaskToDo {
		t.Errorf("state should be unchanged after failed transit, got %v", sm.Current())
	}
}
