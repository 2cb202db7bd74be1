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

package model

import "time"

// ProjectStatusDefault is the status every new project starts with.
const ProjectStatusDefault = "In Progress"

// LeadAssignment pairs a Team Lead with their free-text role on a project
// (e.g. "Backend"). The list is append-only and intentionally not
// deduplicated.
type LeadAssignment struct {
	TeamLeadId string `bson:"teamLeadId" json:"teamLeadId"`
	LeadRole   string `bson:"leadRole" json:"leadRole"`
}

type Project struct {
	BaseModel      `bson:",inline"`
	Title          string           `bson:"title" json:"title"`
	Description    string           `bson:"description" json:"description"`
	StartDate      time.Time        `bson:"startDate" json:"startDate"`
	EndDate        time.Time        `bson:"endDate" json:"endDate"`
	Category       string           `bson:"category" json:"category"`
	ProjectManager string           `bson:"projectManager" json:"projectManager"`
	TeamLeads      []LeadAssignment `bson:"teamLeads" json:"teamLeads"`
	Teams          []string         `bson:"teams" json:"teams"`
	Status         string           `bson:"status" json:"status"`
}

// IsManager reports whether userId owns the project.
func (p *Project) IsManager(userId string) bool {
	return p.ProjectManager == userId
}

// HasLead reports whether userId appears in the lead assignment list.
func (p *Project) HasLead(userId string) bool {
	for _, lead := range p.TeamLeads {
		if lead.TeamLeadId == userId {
			return true
		}
	}
	return false
}

// CreateProjectReq creates a project owned by the calling manager.
type CreateProjectReq struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Category    string    `json:"category"`
}

// AssignTeamLeadsReq appends lead assignments to a project.
type AssignTeamLeadsReq struct {
	TeamLeads []LeadAssignment `json:"teamLeads"`
}

// ProjectResult is the structured outcome envelope for project mutations.
type ProjectResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Project *Project `json:"project"`
}
