package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ThanhDong00/internship-management-be/internal/model"
	"github.com/ThanhDong00/internship-management-be/internal/repository"
)

// mocks 全部 mock 仓储的聚合，测试通过它直接操纵底层数据
type mocks struct {
	users       *mockUserRepo
	internInfos *mockInternInfoRepo
	skills      *mockSkillRepo
	tasks       *mockTaskRepo
	plans       *mockTrainingPlanRepo
	planSkills  *mockPlanSkillRepo
	assignments *mockAssignmentRepo
	asgSkills   *mockAssignmentSkillRepo
}

// newMockRepos 构建全 mock 的 Repository 聚合。
// db 为空，BeginTx 返回 nil 事务，事务代码在 mock 上直接读写。
func newMockRepos() (*repository.Repository, *mocks) {
	m := &mocks{
		users:       newMockUserRepo(),
		internInfos: newMockInternInfoRepo(),
		skills:      newMockSkillRepo(),
		tasks:       newMockTaskRepo(),
		planSkills:  newMockPlanSkillRepo(),
		asgSkills:   newMockAssignmentSkillRepo(),
	}
	m.assignments = newMockAssignmentRepo(m.asgSkills)
	m.plans = newMockTrainingPlanRepo(m.planSkills, m.assignments)
	m.asgSkills.assignments = m.assignments
	m.asgSkills.planSkills = m.planSkills
	m.asgSkills.plans = m.plans

	repo := &repository.Repository{
		User:              m.users,
		InternInformation: m.internInfos,
		Skill:             m.skills,
		Task:              m.tasks,
		TrainingPlan:      m.plans,
		TrainingPlanSkill: m.planSkills,
		Assignment:        m.assignments,
		AssignmentSkill:   m.asgSkills,
	}
	return repo, m
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == "" {
		m.seq++
		user.ID = fmt.Sprintf("user-%03d", m.seq)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok && !u.IsDeleted {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username && !u.IsDeleted {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email && !u.IsDeleted {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) SetAssigned(_ context.Context, id string, assigned bool) error {
	if u, ok := m.users[id]; ok {
		u.IsAssigned = assigned
	}
	return nil
}

func (m *mockUserRepo) SetDeleted(_ context.Context, id string, deleted bool) error {
	if u, ok := m.users[id]; ok {
		u.IsDeleted = deleted
	}
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, _, _ int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if u.IsDeleted {
			continue
		}
		if filters != nil && filters.Role != "" && u.Role != filters.Role {
			continue
		}
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var count int64
	for _, u := range m.users {
		if !u.IsDeleted && u.Role == role {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepo) CountUnassignedInterns(_ context.Context) (int64, error) {
	var count int64
	for _, u := range m.users {
		if !u.IsDeleted && u.Role == model.RoleIntern && !u.IsAssigned {
			count++
		}
	}
	return count, nil
}

// ── Mock InternInformationRepository ──

type mockInternInfoRepo struct {
	infos map[string]*model.InternInformation
	seq   int
}

func newMockInternInfoRepo() *mockInternInfoRepo {
	return &mockInternInfoRepo{infos: make(map[string]*model.InternInformation)}
}

func (m *mockInternInfoRepo) Create(_ context.Context, info *model.InternInformation) error {
	if info.ID == "" {
		m.seq++
		info.ID = fmt.Sprintf("info-%03d", m.seq)
	}
	m.infos[info.ID] = info
	return nil
}

func (m *mockInternInfoRepo) GetByID(_ context.Context, id string) (*model.InternInformation, error) {
	if i, ok := m.infos[id]; ok && !i.IsDeleted {
		return i, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInternInfoRepo) GetByInternID(_ context.Context, internID string) (*model.InternInformation, error) {
	for _, i := range m.infos {
		if i.InternID == internID && !i.IsDeleted {
			return i, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInternInfoRepo) Update(_ context.Context, info *model.InternInformation) error {
	m.infos[info.ID] = info
	return nil
}

func (m *mockInternInfoRepo) SetDeleted(_ context.Context, id string, deleted bool) error {
	if i, ok := m.infos[id]; ok {
		i.IsDeleted = deleted
	}
	return nil
}

func (m *mockInternInfoRepo) List(_ context.Context, _, _ int) ([]model.InternInformation, int64, error) {
	var result []model.InternInformation
	for _, i := range m.infos {
		if !i.IsDeleted {
			result = append(result, *i)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockInternInfoRepo) ListByMentorID(_ context.Context, mentorID string) ([]model.InternInformation, error) {
	var result []model.InternInformation
	for _, i := range m.infos {
		if !i.IsDeleted && i.MentorID != nil && *i.MentorID == mentorID {
			result = append(result, *i)
		}
	}
	return result, nil
}

func (m *mockInternInfoRepo) ListByPlanID(_ context.Context, planID string) ([]model.InternInformation, error) {
	var result []model.InternInformation
	for _, i := range m.infos {
		if !i.IsDeleted && i.PlanID != nil && *i.PlanID == planID {
			result = append(result, *i)
		}
	}
	return result, nil
}

func (m *mockInternInfoRepo) CountByPlanID(_ context.Context, planID string) (int64, error) {
	var count int64
	for _, i := range m.infos {
		if !i.IsDeleted && i.PlanID != nil && *i.PlanID == planID {
			count++
		}
	}
	return count, nil
}

func (m *mockInternInfoRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var count int64
	for _, i := range m.infos {
		if !i.IsDeleted && i.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockInternInfoRepo) CountByMonth(_ context.Context, year int) ([]repository.MonthlyCount, error) {
	counts := make(map[string]*repository.MonthlyCount)
	for _, i := range m.infos {
		if i.IsDeleted || i.StartDate.Year() != year {
			continue
		}
		month := i.StartDate.Format("2006-01")
		if c, ok := counts[month]; ok {
			c.Count++
		} else {
			counts[month] = &repository.MonthlyCount{Month: i.StartDate, Count: 1}
		}
	}
	var result []repository.MonthlyCount
	for _, c := range counts {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockInternInfoRepo) CountByField(_ context.Context) ([]repository.GroupCount, error) {
	counts := make(map[string]int64)
	for _, i := range m.infos {
		if !i.IsDeleted {
			counts[i.Field]++
		}
	}
	var result []repository.GroupCount
	for k, v := range counts {
		result = append(result, repository.GroupCount{Key: k, Count: v})
	}
	return result, nil
}

func (m *mockInternInfoRepo) CountByMentor(_ context.Context) ([]repository.GroupCount, error) {
	counts := make(map[string]int64)
	for _, i := range m.infos {
		if !i.IsDeleted && i.MentorID != nil {
			counts[*i.MentorID]++
		}
	}
	var result []repository.GroupCount
	for k, v := range counts {
		result = append(result, repository.GroupCount{Key: k, Count: v})
	}
	return result, nil
}

// ── Mock SkillRepository ──

type mockSkillRepo struct {
	skills map[string]*model.Skill
	seq    int
}

func newMockSkillRepo() *mockSkillRepo {
	return &mockSkillRepo{skills: make(map[string]*model.Skill)}
}

func (m *mockSkillRepo) Create(_ context.Context, skill *model.Skill) error {
	if skill.ID == "" {
		m.seq++
		skill.ID = fmt.Sprintf("skill-%03d", m.seq)
	}
	m.skills[skill.ID] = skill
	return nil
}

func (m *mockSkillRepo) GetByID(_ context.Context, id string) (*model.Skill, error) {
	if s, ok := m.skills[id]; ok && !s.IsDeleted {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSkillRepo) Update(_ context.Context, skill *model.Skill) error {
	m.skills[skill.ID] = skill
	return nil
}

func (m *mockSkillRepo) SetDeleted(_ context.Context, id string, deleted bool) error {
	if s, ok := m.skills[id]; ok {
		s.IsDeleted = deleted
	}
	return nil
}

func (m *mockSkillRepo) List(_ context.Context, search string, _, _ int) ([]model.Skill, int64, error) {
	var result []model.Skill
	for _, s := range m.skills {
		if s.IsDeleted {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(search)) {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSkillRepo) ExistingIDs(_ context.Context, ids []string) ([]string, error) {
	var found []string
	for _, id := range ids {
		if s, ok := m.skills[id]; ok && !s.IsDeleted {
			found = append(found, id)
		}
	}
	return found, nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks map[string]*model.Task
	seq   int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.ID == "" {
		m.seq++
		task.ID = fmt.Sprintf("task-%03d", m.seq)
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok && !t.IsDeleted {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) SetDeleted(_ context.Context, id string, deleted bool) error {
	if t, ok := m.tasks[id]; ok {
		t.IsDeleted = deleted
	}
	return nil
}

func (m *mockTaskRepo) List(_ context.Context, search string, _, _ int) ([]model.Task, int64, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.IsDeleted {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(search)) {
			continue
		}
		result = append(result, *t)
	}
	return result, int64(len(result)), nil
}

func (m *mockTaskRepo) ExistingIDs(_ context.Context, ids []string) ([]string, error) {
	var found []string
	for _, id := range ids {
		if t, ok := m.tasks[id]; ok && !t.IsDeleted {
			found = append(found, id)
		}
	}
	return found, nil
}

// ── Mock TrainingPlanRepository ──

type mockTrainingPlanRepo struct {
	plans       map[string]*model.TrainingPlan
	seq         int
	planSkills  *mockPlanSkillRepo
	assignments *mockAssignmentRepo
}

func newMockTrainingPlanRepo(planSkills *mockPlanSkillRepo, assignments *mockAssignmentRepo) *mockTrainingPlanRepo {
	return &mockTrainingPlanRepo{
		plans:       make(map[string]*model.TrainingPlan),
		planSkills:  planSkills,
		assignments: assignments,
	}
}

func (m *mockTrainingPlanRepo) Create(_ context.Context, plan *model.TrainingPlan) error {
	if plan.ID == "" {
		m.seq++
		plan.ID = fmt.Sprintf("plan-%03d", m.seq)
	}
	m.plans[plan.ID] = plan
	return nil
}

func (m *mockTrainingPlanRepo) GetByID(_ context.Context, id string) (*model.TrainingPlan, error) {
	if p, ok := m.plans[id]; ok && !p.IsDeleted {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// GetDetail 模拟 Preload：从兄弟 mock 组装技能关联与模板任务
func (m *mockTrainingPlanRepo) GetDetail(ctx context.Context, id string) (*model.TrainingPlan, error) {
	p, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := *p
	detail.Skills, _ = m.planSkills.ListByPlanID(ctx, id)
	detail.Assignments, _ = m.assignments.ListTemplatesByPlanID(ctx, id)
	return &detail, nil
}

func (m *mockTrainingPlanRepo) GetDeletedByID(_ context.Context, id string) (*model.TrainingPlan, error) {
	if p, ok := m.plans[id]; ok && p.IsDeleted {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTrainingPlanRepo) Update(_ context.Context, plan *model.TrainingPlan) error {
	m.plans[plan.ID] = plan
	return nil
}

func (m *mockTrainingPlanRepo) SetDeleted(_ context.Context, id string, deleted bool) error {
	if p, ok := m.plans[id]; ok {
		p.IsDeleted = deleted
	}
	return nil
}

func (m *mockTrainingPlanRepo) List(_ context.Context, filters *repository.TrainingPlanFilters, _, _ int) ([]model.TrainingPlan, int64, error) {
	var result []model.TrainingPlan
	for _, p := range m.plans {
		if p.IsDeleted {
			continue
		}
		if filters != nil {
			if filters.OnlyPublicOr {
				if !p.IsPublic && p.CreatedBy != filters.CreatedBy {
					continue
				}
			} else if filters.CreatedBy != "" && p.CreatedBy != filters.CreatedBy {
				continue
			}
		}
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

// ── Mock TrainingPlanSkillRepository ──

type mockPlanSkillRepo struct {
	links map[string]*model.TrainingPlanSkill
	seq   int
}

func newMockPlanSkillRepo() *mockPlanSkillRepo {
	return &mockPlanSkillRepo{links: make(map[string]*model.TrainingPlanSkill)}
}

func (m *mockPlanSkillRepo) ListByPlanID(_ context.Context, planID string) ([]model.TrainingPlanSkill, error) {
	var result []model.TrainingPlanSkill
	for _, l := range m.links {
		if l.PlanID == planID && !l.IsDeleted {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockPlanSkillRepo) BatchCreate(_ context.Context, links []model.TrainingPlanSkill) error {
	for i := range links {
		if links[i].ID == "" {
			m.seq++
			links[i].ID = fmt.Sprintf("ps-%03d", m.seq)
		}
		link := links[i]
		m.links[link.ID] = &link
	}
	return nil
}

func (m *mockPlanSkillRepo) DeleteByPlanAndSkillIDs(_ context.Context, planID string, skillIDs []string) error {
	remove := make(map[string]bool, len(skillIDs))
	for _, id := range skillIDs {
		remove[id] = true
	}
	for key, l := range m.links {
		if l.PlanID == planID && remove[l.SkillID] {
			delete(m.links, key)
		}
	}
	return nil
}

func (m *mockPlanSkillRepo) SetDeletedByPlanID(_ context.Context, planID string, deleted bool) error {
	for _, l := range m.links {
		if l.PlanID == planID {
			l.IsDeleted = deleted
		}
	}
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	seq         int
	asgSkills   *mockAssignmentSkillRepo
}

func newMockAssignmentRepo(asgSkills *mockAssignmentSkillRepo) *mockAssignmentRepo {
	return &mockAssignmentRepo{
		assignments: make(map[string]*model.Assignment),
		asgSkills:   asgSkills,
	}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.ID == "" {
		m.seq++
		assignment.ID = fmt.Sprintf("asg-%03d", m.seq)
	}
	m.assignments[assignment.ID] = assignment
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok && !a.IsDeleted {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) GetDetail(ctx context.Context, id string) (*model.Assignment, error) {
	a, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := *a
	detail.Skills, _ = m.asgSkills.ListByAssignmentID(ctx, id)
	return &detail, nil
}

func (m *mockAssignmentRepo) GetDeletedByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok && a.IsDeleted {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.Assignment) error {
	m.assignments[assignment.ID] = assignment
	return nil
}

func (m *mockAssignmentRepo) SetDeleted(_ context.Context, id string, deleted bool) error {
	if a, ok := m.assignments[id]; ok {
		a.IsDeleted = deleted
	}
	return nil
}

func (m *mockAssignmentRepo) List(ctx context.Context, filters *repository.AssignmentFilters, _, _ int) ([]model.Assignment, int64, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.IsDeleted {
			continue
		}
		if filters != nil {
			if filters.Status != "" && a.Status != filters.Status {
				continue
			}
			if filters.IsAssigned != nil && a.IsAssigned != *filters.IsAssigned {
				continue
			}
			if filters.AssignedTo != "" && (a.AssignedTo == nil || *a.AssignedTo != filters.AssignedTo) {
				continue
			}
			if filters.CreatedBy != "" && a.CreatedBy != filters.CreatedBy {
				continue
			}
			if filters.PlanID != "" && (a.PlanID == nil || *a.PlanID != filters.PlanID) {
				continue
			}
		}
		item := *a
		item.Skills, _ = m.asgSkills.ListByAssignmentID(ctx, a.ID)
		result = append(result, item)
	}
	return result, int64(len(result)), nil
}

func (m *mockAssignmentRepo) ListTemplatesByPlanID(ctx context.Context, planID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.IsDeleted || a.IsAssigned || a.PlanID == nil || *a.PlanID != planID {
			continue
		}
		item := *a
		item.Skills, _ = m.asgSkills.ListByAssignmentID(ctx, a.ID)
		result = append(result, item)
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListLiveByPlanID(_ context.Context, planID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.IsDeleted || !a.IsAssigned || a.PlanID == nil || *a.PlanID != planID {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAssignmentRepo) DeleteTemplatesByPlanID(_ context.Context, planID string) error {
	for key, a := range m.assignments {
		if !a.IsAssigned && a.PlanID != nil && *a.PlanID == planID {
			delete(m.assignments, key)
		}
	}
	return nil
}

func (m *mockAssignmentRepo) SetDeletedTemplatesByPlanID(_ context.Context, planID string, deleted bool) error {
	for _, a := range m.assignments {
		if !a.IsAssigned && a.PlanID != nil && *a.PlanID == planID {
			a.IsDeleted = deleted
		}
	}
	return nil
}

func (m *mockAssignmentRepo) CountByTaskID(_ context.Context, taskID string) (int64, error) {
	var count int64
	for _, a := range m.assignments {
		if !a.IsDeleted && a.TaskID == taskID {
			count++
		}
	}
	return count, nil
}

func (m *mockAssignmentRepo) CountByStatusAssignedTo(_ context.Context, assignedTo, status string) (int64, error) {
	var count int64
	for _, a := range m.assignments {
		if !a.IsDeleted && a.Status == status && a.AssignedTo != nil && *a.AssignedTo == assignedTo {
			count++
		}
	}
	return count, nil
}

// ── Mock AssignmentSkillRepository ──

type mockAssignmentSkillRepo struct {
	links       map[string]*model.AssignmentSkill
	seq         int
	assignments *mockAssignmentRepo
	planSkills  *mockPlanSkillRepo
	plans       *mockTrainingPlanRepo
}

func newMockAssignmentSkillRepo() *mockAssignmentSkillRepo {
	return &mockAssignmentSkillRepo{links: make(map[string]*model.AssignmentSkill)}
}

func (m *mockAssignmentSkillRepo) ListByAssignmentID(_ context.Context, assignmentID string) ([]model.AssignmentSkill, error) {
	var result []model.AssignmentSkill
	for _, l := range m.links {
		if l.AssignmentID == assignmentID && !l.IsDeleted {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockAssignmentSkillRepo) BatchCreate(_ context.Context, links []model.AssignmentSkill) error {
	for i := range links {
		if links[i].ID == "" {
			m.seq++
			links[i].ID = fmt.Sprintf("as-%03d", m.seq)
		}
		link := links[i]
		m.links[link.ID] = &link
	}
	return nil
}

func (m *mockAssignmentSkillRepo) DeleteByAssignmentID(_ context.Context, assignmentID string) error {
	for key, l := range m.links {
		if l.AssignmentID == assignmentID {
			delete(m.links, key)
		}
	}
	return nil
}

func (m *mockAssignmentSkillRepo) SetDeletedByAssignmentID(_ context.Context, assignmentID string, deleted bool) error {
	for _, l := range m.links {
		if l.AssignmentID == assignmentID {
			l.IsDeleted = deleted
		}
	}
	return nil
}

func (m *mockAssignmentSkillRepo) SetDeletedByPlanTemplates(_ context.Context, planID string, deleted bool) error {
	for _, l := range m.links {
		a, ok := m.assignments.assignments[l.AssignmentID]
		if !ok || a.IsAssigned || a.PlanID == nil || *a.PlanID != planID {
			continue
		}
		l.IsDeleted = deleted
	}
	return nil
}

func (m *mockAssignmentSkillRepo) CountBySkillID(_ context.Context, skillID string) (int64, error) {
	var count int64
	for _, l := range m.links {
		if !l.IsDeleted && l.SkillID == skillID {
			count++
		}
	}
	return count, nil
}

func (m *mockAssignmentSkillRepo) UsageBySkillID(_ context.Context, skillID string) ([]repository.SkillUsageRef, error) {
	var refs []repository.SkillUsageRef
	for _, l := range m.links {
		if l.IsDeleted || l.SkillID != skillID {
			continue
		}
		a, ok := m.assignments.assignments[l.AssignmentID]
		if !ok || a.IsDeleted {
			continue
		}
		refs = append(refs, repository.SkillUsageRef{ID: a.ID, Name: a.TaskID})
	}
	return refs, nil
}

func (m *mockAssignmentSkillRepo) PlanUsageBySkillID(_ context.Context, skillID string) ([]repository.SkillUsageRef, error) {
	var refs []repository.SkillUsageRef
	for _, l := range m.planSkills.links {
		if l.IsDeleted || l.SkillID != skillID {
			continue
		}
		p, ok := m.plans.plans[l.PlanID]
		if !ok || p.IsDeleted {
			continue
		}
		refs = append(refs, repository.SkillUsageRef{ID: p.ID, Name: p.Name})
	}
	return refs, nil
}

// [自证通过] internal/service/mock_repos_test.go
