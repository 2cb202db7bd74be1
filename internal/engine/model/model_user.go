package model

// Role is the closed set of user roles. A user's role is fixed at signup
// and never updated.
type Role string

const (
	RoleProjectManager Role = "Project_Manager"
	RoleTeamLead       Role = "Team_Lead"
	RoleTeamMember     Role = "Team_Member"
)

// IsValid reports whether r is one of the three known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleProjectManager, RoleTeamLead, RoleTeamMember:
		return true
	}
	return false
}

type User struct {
	BaseModel `bson:",inline"`
	Username  string `bson:"username" json:"username"`
	Email     string `bson:"email" json:"email"`
	Password  string `bson:"password" json:"-"`
	Role      Role   `bson:"role" json:"role"`
}

type Register struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type Login struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResp struct {
	UserInfo UserInfo          `json:"userInfo"`
	Token    map[string]string `json:"token"`
}

type UserInfo struct {
	UserId   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// ToUserInfo strips credentials for responses.
func (u *User) ToUserInfo() UserInfo {
	return UserInfo{
		UserId:   u.Id,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
