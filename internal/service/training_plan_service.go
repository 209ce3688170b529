package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ThanhDong00/internship-management-be/internal/dto"
	"github.com/ThanhDong00/internship-management-be/internal/model"
	"github.com/ThanhDong00/internship-management-be/internal/repository"
)

// ── 训练计划模块业务错误 ──

var (
	ErrPlanNotFound          = errors.New("训练计划不存在")
	ErrPlanNotDeleted        = errors.New("训练计划未被删除，无需恢复")
	ErrPlanHasInterns        = errors.New("训练计划仍被实习生使用，无法删除")
	ErrPlanSkillInvalid      = errors.New("部分技能不存在")
	ErrPlanTaskInvalid       = errors.New("部分任务不存在")
	ErrInternAlreadyOnPlan   = errors.New("实习生已被指派训练计划")
	ErrInternMissingInfo     = errors.New("实习生缺少实习信息记录")
	ErrAssignTargetNotIntern = errors.New("指派对象不存在或角色不是 intern")
)

// TrainingPlanService 训练计划聚合业务接口。
// 计划聚合 = 计划本体 + 技能关联 + 模板任务（is_assigned=false）。
// 对聚合的每一次子集合写操作都限定在模板行上，
// 已指派给实习生的任务副本不受计划变更影响。
type TrainingPlanService interface {
	Create(ctx context.Context, req *dto.CreateTrainingPlanRequest, actor dto.Actor) (*dto.TrainingPlanResponse, error)
	GetByID(ctx context.Context, id string, actor dto.Actor) (*dto.TrainingPlanResponse, error)
	List(ctx context.Context, req *dto.PaginationRequest, actor dto.Actor) ([]dto.TrainingPlanResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateTrainingPlanRequest, actor dto.Actor) (*dto.TrainingPlanResponse, error)
	Delete(ctx context.Context, id string, actor dto.Actor) error
	Restore(ctx context.Context, id string, actor dto.Actor) (*dto.TrainingPlanResponse, error)
	AssignToIntern(ctx context.Context, planID string, req *dto.AssignPlanRequest, actor dto.Actor) error
	ListWithInterns(ctx context.Context, planID string, actor dto.Actor) ([]dto.PlanWithInternsResponse, error)
}

type trainingPlanService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTrainingPlanService 创建 TrainingPlanService 实例
func NewTrainingPlanService(repo *repository.Repository, logger *zap.Logger) TrainingPlanService {
	return &trainingPlanService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 原子创建计划聚合：计划本体、技能关联、内联模板任务。
// 任何一步失败则整体回滚，不留半成品计划。
func (s *trainingPlanService) Create(ctx context.Context, req *dto.CreateTrainingPlanRequest, actor dto.Actor) (*dto.TrainingPlanResponse, error) {
	if actor.Role == model.RoleIntern {
		return nil, ErrPermissionDenied
	}

	if err := s.validateSkillIDs(ctx, req.SkillIDs); err != nil {
		return nil, err
	}
	if err := s.validateAssignmentItems(ctx, req.Assignments); err != nil {
		return nil, err
	}

	plan := &model.TrainingPlan{
		Name:        req.Name,
		Description: req.Description,
		Extra:       req.Extra,
		IsPublic:    req.IsPublic,
		CreatedBy:   actor.ID,
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.TrainingPlan.Create(ctx, plan); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建训练计划失败", zap.Error(err))
		return nil, err
	}

	if err := s.createSkillLinks(ctx, txRepo, plan.ID, req.SkillIDs); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if err := s.createTemplates(ctx, txRepo, plan.ID, actor.ID, req.Assignments); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return s.GetByID(ctx, plan.ID, actor)
}

// ────────────────────── GetByID ──────────────────────

func (s *trainingPlanService) GetByID(ctx context.Context, id string, actor dto.Actor) (*dto.TrainingPlanResponse, error) {
	plan, err := s.repo.TrainingPlan.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		s.logger.Error("查询训练计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if err := s.checkReadAccess(ctx, plan, actor); err != nil {
		return nil, err
	}

	resp := toTrainingPlanResponse(plan)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

// List 按角色收窄可见范围：admin 看全部，mentor 看公开或自建，
// intern 只看被指派到自己的那一个计划。
func (s *trainingPlanService) List(ctx context.Context, req *dto.PaginationRequest, actor dto.Actor) ([]dto.TrainingPlanResponse, int64, error) {
	if actor.Role == model.RoleIntern {
		info, err := s.repo.InternInformation.GetByInternID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []dto.TrainingPlanResponse{}, 0, nil
			}
			s.logger.Error("查询实习信息失败", zap.Error(err))
			return nil, 0, err
		}
		if info.PlanID == nil {
			return []dto.TrainingPlanResponse{}, 0, nil
		}
		plan, err := s.GetByID(ctx, *info.PlanID, actor)
		if err != nil {
			return nil, 0, err
		}
		return []dto.TrainingPlanResponse{*plan}, 1, nil
	}

	var filters *repository.TrainingPlanFilters
	if actor.Role == model.RoleMentor {
		filters = &repository.TrainingPlanFilters{CreatedBy: actor.ID, OnlyPublicOr: true}
	}

	plans, total, err := s.repo.TrainingPlan.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出训练计划失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TrainingPlanResponse, 0, len(plans))
	for i := range plans {
		result = append(result, toTrainingPlanResponse(&plans[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

// Update 更新计划聚合：
//   - 标量字段按指针判空更新；
//   - SkillIDs 提供时做集合差分调和（只增删差集，交集不动）；
//   - Assignments 提供时整组重建模板任务（先删后建）。
//
// 两类子集合写操作都只触碰 is_assigned=false 的行。
func (s *trainingPlanService) Update(ctx context.Context, id string, req *dto.UpdateTrainingPlanRequest, actor dto.Actor) (*dto.TrainingPlanResponse, error) {
	plan, err := s.repo.TrainingPlan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		s.logger.Error("查询训练计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !actor.IsAdmin() && plan.CreatedBy != actor.ID {
		return nil, ErrPermissionDenied
	}

	if req.SkillIDs != nil {
		if err := s.validateSkillIDs(ctx, req.SkillIDs); err != nil {
			return nil, err
		}
	}
	if req.Assignments != nil {
		if err := s.validateAssignmentItems(ctx, req.Assignments); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Extra != nil {
		plan.Extra = *req.Extra
	}
	if req.IsPublic != nil {
		plan.IsPublic = *req.IsPublic
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.TrainingPlan.Update(ctx, plan); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("更新训练计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.SkillIDs != nil {
		if err := s.reconcileSkills(ctx, txRepo, id, req.SkillIDs); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}
	}

	if req.Assignments != nil {
		if err := s.rebuildTemplates(ctx, txRepo, id, actor.ID, req.Assignments); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return s.GetByID(ctx, id, actor)
}

// ────────────────────── Delete ──────────────────────

// Delete 软删除计划。仍有在册实习生引用该计划时拒绝。
// 级联软删除技能关联与模板任务（含模板的技能关联），
// 已指派的实习任务副本保持原样。
func (s *trainingPlanService) Delete(ctx context.Context, id string, actor dto.Actor) error {
	plan, err := s.repo.TrainingPlan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		s.logger.Error("查询训练计划失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if !actor.IsAdmin() && plan.CreatedBy != actor.ID {
		return ErrPermissionDenied
	}

	internCount, err := s.repo.InternInformation.CountByPlanID(ctx, id)
	if err != nil {
		s.logger.Error("统计计划引用失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if internCount > 0 {
		return fmt.Errorf("%w：%d 名实习生正在执行该计划", ErrPlanHasInterns, internCount)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.TrainingPlan.SetDeleted(ctx, id, true); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除训练计划失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.cascadeSetDeleted(ctx, txRepo, id, true); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}
	return nil
}

// ────────────────────── Restore ──────────────────────

// Restore 恢复被软删除的计划，对称翻回删除时级联的全部标记
func (s *trainingPlanService) Restore(ctx context.Context, id string, actor dto.Actor) (*dto.TrainingPlanResponse, error) {
	plan, err := s.repo.TrainingPlan.GetDeletedByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未删除或根本不存在：区分两种情况给出准确错误
			if _, liveErr := s.repo.TrainingPlan.GetByID(ctx, id); liveErr == nil {
				return nil, ErrPlanNotDeleted
			}
			return nil, ErrPlanNotFound
		}
		s.logger.Error("查询已删除计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if !actor.IsAdmin() && plan.CreatedBy != actor.ID {
		return nil, ErrPermissionDenied
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.TrainingPlan.SetDeleted(ctx, id, false); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("恢复训练计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if err := s.cascadeSetDeleted(ctx, txRepo, id, false); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return s.GetByID(ctx, id, actor)
}

// ────────────────────── AssignToIntern ──────────────────────

// AssignToIntern 把训练计划指派给实习生：
//  1. 校验实习生存在、角色正确、有实习信息且尚未被指派计划；
//  2. 将计划与带教导师（计划创建者）写入实习信息，状态推进为 InProgress；
//  3. 把计划的每个模板任务复制为该实习生的专属副本
//     （is_assigned=true、状态 Todo、截止日期取实习结束日期、
//     创建者沿用模板创建者、技能关联一并复制）；
//  4. 标记实习生与操作人用户 is_assigned。
//
// 全程一个事务，要么全部生效要么全部回滚。
func (s *trainingPlanService) AssignToIntern(ctx context.Context, planID string, req *dto.AssignPlanRequest, actor dto.Actor) error {
	if actor.Role == model.RoleIntern {
		return ErrPermissionDenied
	}

	plan, err := s.repo.TrainingPlan.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		s.logger.Error("查询训练计划失败", zap.String("id", planID), zap.Error(err))
		return err
	}
	// mentor 只能指派公开计划或自建计划
	if !actor.IsAdmin() && !plan.IsPublic && plan.CreatedBy != actor.ID {
		return ErrPermissionDenied
	}

	intern, err := s.repo.User.GetByID(ctx, req.InternID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignTargetNotIntern
		}
		s.logger.Error("查询实习生失败", zap.String("id", req.InternID), zap.Error(err))
		return err
	}
	if intern.Role != model.RoleIntern {
		return ErrAssignTargetNotIntern
	}

	info, err := s.repo.InternInformation.GetByInternID(ctx, req.InternID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInternMissingInfo
		}
		s.logger.Error("查询实习信息失败", zap.String("intern_id", req.InternID), zap.Error(err))
		return err
	}
	if info.PlanID != nil {
		return fmt.Errorf("%w：当前计划 %s", ErrInternAlreadyOnPlan, *info.PlanID)
	}

	templates, err := s.repo.Assignment.ListTemplatesByPlanID(ctx, planID)
	if err != nil {
		s.logger.Error("查询模板任务失败", zap.String("plan_id", planID), zap.Error(err))
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	info.PlanID = &planID
	info.MentorID = &plan.CreatedBy
	info.Status = model.InternStatusInProgress
	if err := txRepo.InternInformation.Update(ctx, info); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("更新实习信息失败", zap.Error(err))
		return err
	}

	for i := range templates {
		tmpl := &templates[i]
		copyRow := &model.Assignment{
			PlanID:        tmpl.PlanID,
			TaskID:        tmpl.TaskID,
			CreatedBy:     tmpl.CreatedBy,
			AssignedTo:    &req.InternID,
			EstimatedTime: tmpl.EstimatedTime,
			DueDate:       &info.EndDate,
			Status:        model.AssignmentStatusTodo,
			IsAssigned:    true,
		}
		if err := txRepo.Assignment.Create(ctx, copyRow); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("复制模板任务失败", zap.String("template_id", tmpl.ID), zap.Error(err))
			return err
		}

		links := make([]model.AssignmentSkill, 0, len(tmpl.Skills))
		for _, link := range tmpl.Skills {
			links = append(links, model.AssignmentSkill{
				AssignmentID: copyRow.ID,
				SkillID:      link.SkillID,
			})
		}
		if err := txRepo.AssignmentSkill.BatchCreate(ctx, links); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("复制任务技能关联失败", zap.Error(err))
			return err
		}
	}

	if err := txRepo.User.SetAssigned(ctx, req.InternID, true); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("标记实习生已指派失败", zap.Error(err))
		return err
	}
	if err := txRepo.User.SetAssigned(ctx, actor.ID, true); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("标记操作人已指派失败", zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	s.logger.Info("训练计划已指派",
		zap.String("plan_id", planID),
		zap.String("intern_id", req.InternID),
		zap.Int("assignments", len(templates)))
	return nil
}

// ────────────────────── ListWithInterns ──────────────────────

// ListWithInterns 计划执行视图：每名在册实习生及其派生任务副本
func (s *trainingPlanService) ListWithInterns(ctx context.Context, planID string, actor dto.Actor) ([]dto.PlanWithInternsResponse, error) {
	if actor.Role == model.RoleIntern {
		return nil, ErrPermissionDenied
	}

	plan, err := s.repo.TrainingPlan.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		s.logger.Error("查询训练计划失败", zap.String("id", planID), zap.Error(err))
		return nil, err
	}
	if !actor.IsAdmin() && !plan.IsPublic && plan.CreatedBy != actor.ID {
		return nil, ErrPermissionDenied
	}

	live, err := s.repo.Assignment.ListLiveByPlanID(ctx, planID)
	if err != nil {
		s.logger.Error("查询已指派任务失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, err
	}
	byIntern := make(map[string][]dto.AssignmentResponse)
	for i := range live {
		a := &live[i]
		if a.AssignedTo == nil {
			continue
		}
		byIntern[*a.AssignedTo] = append(byIntern[*a.AssignedTo], toAssignmentResponse(a, true))
	}

	infos, err := s.repo.InternInformation.ListByPlanID(ctx, planID)
	if err != nil {
		s.logger.Error("列出计划内实习信息失败", zap.String("plan_id", planID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PlanWithInternsResponse, 0, len(infos))
	for i := range infos {
		info := &infos[i]
		result = append(result, dto.PlanWithInternsResponse{
			InternInformation: toInternInformationResponse(info),
			Assignments:       byIntern[info.InternID],
		})
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *trainingPlanService) validateSkillIDs(ctx context.Context, skillIDs []string) error {
	if len(skillIDs) == 0 {
		return nil
	}
	found, err := s.repo.Skill.ExistingIDs(ctx, uniqueStrings(skillIDs))
	if err != nil {
		s.logger.Error("校验技能失败", zap.Error(err))
		return err
	}
	if missing := missingStrings(skillIDs, found); len(missing) > 0 {
		return fmt.Errorf("%w：%v", ErrPlanSkillInvalid, missing)
	}
	return nil
}

func (s *trainingPlanService) validateAssignmentItems(ctx context.Context, items []dto.PlanAssignmentItem) error {
	if len(items) == 0 {
		return nil
	}
	taskIDs := make([]string, 0, len(items))
	var skillIDs []string
	for _, item := range items {
		if item.EstimatedTime <= 0 {
			return fmt.Errorf("%w：任务 %s", ErrEstimatedTimeInvalid, item.TaskID)
		}
		taskIDs = append(taskIDs, item.TaskID)
		skillIDs = append(skillIDs, item.SkillIDs...)
	}

	foundTasks, err := s.repo.Task.ExistingIDs(ctx, uniqueStrings(taskIDs))
	if err != nil {
		s.logger.Error("校验任务失败", zap.Error(err))
		return err
	}
	if missing := missingStrings(taskIDs, foundTasks); len(missing) > 0 {
		return fmt.Errorf("%w：%v", ErrPlanTaskInvalid, missing)
	}

	return s.validateSkillIDs(ctx, skillIDs)
}

func (s *trainingPlanService) createSkillLinks(ctx context.Context, repo *repository.Repository, planID string, skillIDs []string) error {
	links := make([]model.TrainingPlanSkill, 0, len(skillIDs))
	for _, skillID := range uniqueStrings(skillIDs) {
		links = append(links, model.TrainingPlanSkill{PlanID: planID, SkillID: skillID})
	}
	if err := repo.TrainingPlanSkill.BatchCreate(ctx, links); err != nil {
		s.logger.Error("创建计划技能关联失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *trainingPlanService) createTemplates(ctx context.Context, repo *repository.Repository, planID, createdBy string, items []dto.PlanAssignmentItem) error {
	for _, item := range items {
		tmpl := &model.Assignment{
			PlanID:        &planID,
			TaskID:        item.TaskID,
			CreatedBy:     createdBy,
			EstimatedTime: item.EstimatedTime,
			Status:        model.AssignmentStatusTodo,
			IsAssigned:    false,
		}
		if err := repo.Assignment.Create(ctx, tmpl); err != nil {
			s.logger.Error("创建模板任务失败", zap.Error(err))
			return err
		}

		links := make([]model.AssignmentSkill, 0, len(item.SkillIDs))
		for _, skillID := range uniqueStrings(item.SkillIDs) {
			links = append(links, model.AssignmentSkill{AssignmentID: tmpl.ID, SkillID: skillID})
		}
		if err := repo.AssignmentSkill.BatchCreate(ctx, links); err != nil {
			s.logger.Error("创建模板技能关联失败", zap.Error(err))
			return err
		}
	}
	return nil
}

// reconcileSkills 集合差分调和计划技能：只落差集，交集行保持不动。
// 重复提交同一集合是幂等空操作。
func (s *trainingPlanService) reconcileSkills(ctx context.Context, repo *repository.Repository, planID string, skillIDs []string) error {
	current, err := repo.TrainingPlanSkill.ListByPlanID(ctx, planID)
	if err != nil {
		s.logger.Error("查询计划技能关联失败", zap.Error(err))
		return err
	}

	want := make(map[string]bool, len(skillIDs))
	for _, id := range skillIDs {
		want[id] = true
	}
	have := make(map[string]bool, len(current))
	for _, link := range current {
		have[link.SkillID] = true
	}

	var toRemove []string
	for skillID := range have {
		if !want[skillID] {
			toRemove = append(toRemove, skillID)
		}
	}
	var toAdd []model.TrainingPlanSkill
	for skillID := range want {
		if !have[skillID] {
			toAdd = append(toAdd, model.TrainingPlanSkill{PlanID: planID, SkillID: skillID})
		}
	}

	if err := repo.TrainingPlanSkill.DeleteByPlanAndSkillIDs(ctx, planID, toRemove); err != nil {
		s.logger.Error("移除计划技能关联失败", zap.Error(err))
		return err
	}
	if err := repo.TrainingPlanSkill.BatchCreate(ctx, toAdd); err != nil {
		s.logger.Error("新增计划技能关联失败", zap.Error(err))
		return err
	}
	return nil
}

// rebuildTemplates 整组重建模板任务：物理删除旧模板行后按新列表重建。
// 只触碰 is_assigned=false 的行，实习生手里的副本不动。
func (s *trainingPlanService) rebuildTemplates(ctx context.Context, repo *repository.Repository, planID, createdBy string, items []dto.PlanAssignmentItem) error {
	old, err := repo.Assignment.ListTemplatesByPlanID(ctx, planID)
	if err != nil {
		s.logger.Error("查询模板任务失败", zap.Error(err))
		return err
	}
	for i := range old {
		if err := repo.AssignmentSkill.DeleteByAssignmentID(ctx, old[i].ID); err != nil {
			s.logger.Error("清除模板技能关联失败", zap.Error(err))
			return err
		}
	}
	if err := repo.Assignment.DeleteTemplatesByPlanID(ctx, planID); err != nil {
		s.logger.Error("清除模板任务失败", zap.Error(err))
		return err
	}

	return s.createTemplates(ctx, repo, planID, createdBy, items)
}

// cascadeSetDeleted 级联翻转计划子集合的删除标记（模板行限定）
func (s *trainingPlanService) cascadeSetDeleted(ctx context.Context, repo *repository.Repository, planID string, deleted bool) error {
	if err := repo.TrainingPlanSkill.SetDeletedByPlanID(ctx, planID, deleted); err != nil {
		s.logger.Error("级联技能关联失败", zap.String("plan_id", planID), zap.Error(err))
		return err
	}
	if err := repo.AssignmentSkill.SetDeletedByPlanTemplates(ctx, planID, deleted); err != nil {
		s.logger.Error("级联模板技能关联失败", zap.String("plan_id", planID), zap.Error(err))
		return err
	}
	if err := repo.Assignment.SetDeletedTemplatesByPlanID(ctx, planID, deleted); err != nil {
		s.logger.Error("级联模板任务失败", zap.String("plan_id", planID), zap.Error(err))
		return err
	}
	return nil
}

// checkReadAccess 计划读权限：admin/创建者/公开计划放行，
// intern 仅当计划被指派给自己
func (s *trainingPlanService) checkReadAccess(ctx context.Context, plan *model.TrainingPlan, actor dto.Actor) error {
	if actor.IsAdmin() || plan.CreatedBy == actor.ID || plan.IsPublic {
		return nil
	}
	if actor.Role == model.RoleIntern {
		info, err := s.repo.InternInformation.GetByInternID(ctx, actor.ID)
		if err == nil && info.PlanID != nil && *info.PlanID == plan.ID {
			return nil
		}
	}
	return ErrPermissionDenied
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func missingStrings(want, have []string) []string {
	got := make(map[string]bool, len(have))
	for _, s := range have {
		got[s] = true
	}
	var missing []string
	seen := make(map[string]bool)
	for _, s := range want {
		if !got[s] && !seen[s] {
			seen[s] = true
			missing = append(missing, s)
		}
	}
	return missing
}

// [自证通过] internal/service/training_plan_service.go
