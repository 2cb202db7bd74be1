package model

// MemberAssignment pairs a Team Member with their free-text role inside a
// team (e.g. "Developer"). Appended unconditionally, duplicates included.
type MemberAssignment struct {
	TeamMemberId string `bson:"teamMemberId" json:"teamMemberId"`
	MemberRole   string `bson:"memberRole" json:"memberRole"`
}

type Team struct {
	BaseModel   `bson:",inline"`
	ProjectId   string             `bson:"projectId" json:"projectId"`
	LeadId      string             `bson:"leadId" json:"leadId"`
	TeamName    string             `bson:"teamName" json:"teamName"`
	Description string             `bson:"description" json:"description"`
	Members     []MemberAssignment `bson:"members" json:"members"`
}

// HasMember reports whether userId appears in the member list.
func (t *Team) HasMember(userId string) bool {
	for _, m := range t.Members {
		if m.TeamMemberId == userId {
			return true
		}
	}
	return false
}

// CreateTeamReq creates a team under a project, owned by the calling lead.
type CreateTeamReq struct {
	ProjectId   string `json:"projectId"`
	TeamName    string `json:"teamName"`
	Description string `json:"description"`
}

// AddTeamMembersReq appends member assignments to a team.
type AddTeamMembersReq struct {
	TeamMembers []MemberAssignment `json:"teamMembers"`
}

// TeamResult is the structured outcome envelope for team mutations.
type TeamResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Team    *Team  `json:"team"`
}
