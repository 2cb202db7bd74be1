package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-stride/stride/internal/engine/model"
	"github.com/go-stride/stride/internal/engine/repo"
	"github.com/go-stride/stride/internal/pkg/notify"
	"github.com/go-stride/stride/pkg/id"
)

// In-memory repositories backing the service tests. They honor the same
// ErrNotFound contract as the mongo implementations.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

var _ repo.IUserRepository = (*memUserRepo)(nil)

func (m *memUserRepo) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *user
	m.users[user.Id] = &cp
	return nil
}

func (m *memUserRepo) GetUserById(_ context.Context, userId string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userId]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *memUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) ListUsersByRole(_ context.Context, role model.Role) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.User
	for _, user := range m.users {
		if user.Role == role {
			cp := *user
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memUserRepo) SetToken(_, _ string, _ time.Duration) error { return nil }
func (m *memUserRepo) DelToken(_ string) error                     { return nil }

type memProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*model.Project
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: make(map[string]*model.Project)}
}

var _ repo.IProjectRepository = (*memProjectRepo)(nil)

func (m *memProjectRepo) CreateProject(_ context.Context, project *model.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *project
	m.projects[project.Id] = &cp
	return nil
}

func (m *memProjectRepo) GetProjectById(_ context.Context, projectId string) (*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	project, ok := m.projects[projectId]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *project
	cp.TeamLeads = append([]model.LeadAssignment(nil), project.TeamLeads...)
	cp.Teams = append([]string(nil), project.Teams...)
	return &cp, nil
}

func (m *memProjectRepo) ListByManager(_ context.Context, managerId string) ([]*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Project
	for _, project := range m.projects {
		if project.ProjectManager == managerId {
			out = append(out, project)
		}
	}
	return out, nil
}

func (m *memProjectRepo) ListByLead(_ context.Context, leadId string) ([]*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Project
	for _, project := range m.projects {
		if project.HasLead(leadId) {
			out = append(out, project)
		}
	}
	return out, nil
}

func (m *memProjectRepo) ListByIds(_ context.Context, projectIds []string) ([]*model.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Project
	for _, pid := range projectIds {
		if project, ok := m.projects[pid]; ok {
			out = append(out, project)
		}
	}
	return out, nil
}

func (m *memProjectRepo) AddTeamLeads(_ context.Context, projectId string, leads []model.LeadAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	project, ok := m.projects[projectId]
	if !ok {
		return repo.ErrNotFound
	}
	project.TeamLeads = append(project.TeamLeads, leads...)
	return nil
}

func (m *memProjectRepo) RemoveTeamLead(_ context.Context, projectId, leadId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	project, ok := m.projects[projectId]
	if !ok {
		return repo.ErrNotFound
	}
	var kept []model.LeadAssignment
	for _, lead := range project.TeamLeads {
		if lead.TeamLeadId != leadId {
			kept = append(kept, lead)
		}
	}
	project.TeamLeads = kept
	return nil
}

func (m *memProjectRepo) AddTeam(_ context.Context, projectId, teamId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	project, ok := m.projects[projectId]
	if !ok {
		return repo.ErrNotFound
	}
	project.Teams = append(project.Teams, teamId)
	return nil
}

func (m *memProjectRepo) RemoveTeam(_ context.Context, projectId, teamId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	project, ok := m.projects[projectId]
	if !ok {
		return repo.ErrNotFound
	}
	var kept []string
	for _, tid := range project.Teams {
		if tid != teamId {
			kept = append(kept, tid)
		}
	}
	project.Teams = kept
	return nil
}

func (m *memProjectRepo) DeleteProject(_ context.Context, projectId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[projectId]; !ok {
		return repo.ErrNotFound
	}
	delete(m.projects, projectId)
	return nil
}

type memTeamRepo struct {
	mu    sync.Mutex
	teams map[string]*model.Team
}

func newMemTeamRepo() *memTeamRepo {
	return &memTeamRepo{teams: make(map[string]*model.Team)}
}

var _ repo.ITeamRepository = (*memTeamRepo)(nil)

func (m *memTeamRepo) CreateTeam(_ context.Context, team *model.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *team
	m.teams[team.Id] = &cp
	return nil
}

func (m *memTeamRepo) GetTeamById(_ context.Context, teamId string) (*model.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	team, ok := m.teams[teamId]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *team
	cp.Members = append([]model.MemberAssignment(nil), team.Members...)
	return &cp, nil
}

func (m *memTeamRepo) ListByProject(_ context.Context, projectId string) ([]*model.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Team
	for _, team := range m.teams {
		if team.ProjectId == projectId {
			out = append(out, team)
		}
	}
	return out, nil
}

func (m *memTeamRepo) ListByLead(_ context.Context, leadId string) ([]*model.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Team
	for _, team := range m.teams {
		if team.LeadId == leadId {
			out = append(out, team)
		}
	}
	return out, nil
}

func (m *memTeamRepo) ListByMember(_ context.Context, memberId string) ([]*model.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Team
	for _, team := range m.teams {
		if team.HasMember(memberId) {
			out = append(out, team)
		}
	}
	return out, nil
}

func (m *memTeamRepo) AddMembers(_ context.Context, teamId string, members []model.MemberAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	team, ok := m.teams[teamId]
	if !ok {
		return repo.ErrNotFound
	}
	team.Members = append(team.Members, members...)
	return nil
}

func (m *memTeamRepo) RemoveMember(_ context.Context, teamId, memberId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	team, ok := m.teams[teamId]
	if !ok {
		return repo.ErrNotFound
	}
	var kept []model.MemberAssignment
	for _, member := range team.Members {
		if member.TeamMemberId != memberId {
			kept = append(kept, member)
		}
	}
	team.Members = kept
	return nil
}

func (m *memTeamRepo) DeleteTeam(_ context.Context, teamId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.teams[teamId]; !ok {
		return repo.ErrNotFound
	}
	delete(m.teams, teamId)
	return nil
}

func (m *memTeamRepo) DeleteByProject(_ context.Context, projectId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for tid, team := range m.teams {
		if team.ProjectId == projectId {
			delete(m.teams, tid)
		}
	}
	return nil
}

type memTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*model.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[string]*model.Task)}
}

var _ repo.ITaskRepository = (*memTaskRepo)(nil)

func (m *memTaskRepo) CreateTask(_ context.Context, task *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *task
	m.tasks[task.Id] = &cp
	return nil
}

func (m *memTaskRepo) GetTaskById(_ context.Context, taskId string) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskId]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *task
	cp.History = append([]model.HistoryEntry(nil), task.History...)
	cp.Attachments = append([]string(nil), task.Attachments...)
	return &cp, nil
}

func (m *memTaskRepo) UpdateTask(_ context.Context, task *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.Id]; !ok {
		return repo.ErrNotFound
	}
	cp := *task
	m.tasks[task.Id] = &cp
	return nil
}

func (m *memTaskRepo) ListByProject(_ context.Context, projectId string) ([]*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Task
	for _, task := range m.tasks {
		if task.ProjectId == projectId {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *memTaskRepo) ListByAssignee(_ context.Context, userId string) ([]*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Task
	for _, task := range m.tasks {
		if task.AssignedTo == userId {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *memTaskRepo) ListByCreator(_ context.Context, userId string) ([]*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Task
	for _, task := range m.tasks {
		if task.CreatedBy == userId {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *memTaskRepo) DeleteTask(_ context.Context, taskId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[taskId]; !ok {
		return repo.ErrNotFound
	}
	delete(m.tasks, taskId)
	return nil
}

func (m *memTaskRepo) DeleteByProject(_ context.Context, projectId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for tid, task := range m.tasks {
		if task.ProjectId == projectId {
			delete(m.tasks, tid)
		}
	}
	return nil
}

type nopMailer struct{}

func (nopMailer) Send(context.Context, notify.Mail) error { return nil }

// env bundles the wired services over in-memory stores for a test.
type env struct {
	users      *memUserRepo
	projects   *memProjectRepo
	teams      *memTeamRepo
	tasks      *memTaskRepo
	dispatcher *notify.Dispatcher

	projectSvc *ProjectService
	teamSvc    *TeamService
	taskSvc    *TaskService
}

func newEnv() *env {
	users := newMemUserRepo()
	projects := newMemProjectRepo()
	teams := newMemTeamRepo()
	tasks := newMemTaskRepo()
	access := NewAccessResolver(teams)
	dispatcher := notify.NewDispatcher(nopMailer{})

	return &env{
		users:      users,
		projects:   projects,
		teams:      teams,
		tasks:      tasks,
		dispatcher: dispatcher,
		projectSvc: NewProjectService(projects, teams, tasks, users, access, dispatcher),
		teamSvc:    NewTeamService(teams, projects, users, access, dispatcher),
		taskSvc:    NewTaskService(tasks, projects, teams, users, access, dispatcher),
	}
}

// addUser stores a user with a generated id; identifiers flowing through
// the services have to parse as UUIDs.
func (e *env) addUser(name string, role model.Role) *model.UserInfo {
	user := &model.User{
		BaseModel: model.BaseModel{Id: id.GetUUIDWithoutDashes()},
		Username:  name,
		Email:     name + "@example.com",
		Role:      role,
	}
	_ = e.users.CreateUser(context.Background(), user)
	info := user.ToUserInfo()
	return &info
}
