package dto

// ── 实习信息模块 DTO ──

// CreateInternInformationRequest 创建实习信息请求
type CreateInternInformationRequest struct {
	Field     string `json:"field"`
	MentorID  string `json:"mentor_id"`
	StartDate string `json:"start_date" binding:"required"` // "2026-09-01"
	EndDate   string `json:"end_date"   binding:"required"`
}

// UpdateInternInformationRequest 更新实习信息请求
type UpdateInternInformationRequest struct {
	Field     *string `json:"field"`
	MentorID  *string `json:"mentor_id"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Status    *string `json:"status" binding:"omitempty,oneof=Onboarding InProgress Completed Dropped"`
}

// InternInformationResponse 实习信息响应
type InternInformationResponse struct {
	ID        string `json:"id"`
	InternID  string `json:"intern_id"`
	MentorID  string `json:"mentor_id,omitempty"`
	PlanID    string `json:"plan_id,omitempty"`
	Field     string `json:"field,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`

	Intern *UserResponse         `json:"intern,omitempty"`
	Mentor *UserResponse         `json:"mentor,omitempty"`
	Plan   *TrainingPlanResponse `json:"plan,omitempty"`
}

// [自证通过] internal/dto/intern_information.go
