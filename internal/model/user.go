package model

import "time"

// ── 角色常量 ──

const (
	RoleAdmin  = "admin"
	RoleMentor = "mentor"
	RoleIntern = "intern"
)

// ── 实习状态常量 ──

const (
	InternStatusOnboarding = "Onboarding"
	InternStatusInProgress = "InProgress"
	InternStatusCompleted  = "Completed"
	InternStatusDropped    = "Dropped"
)

// User 用户表 — 对应 users
type User struct {
	ID           string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Username     string     `gorm:"type:varchar(100);not null;uniqueIndex"         json:"username"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                     json:"-"`
	FullName     string     `gorm:"type:varchar(100);not null"                     json:"full_name"`
	PhoneNumber  string     `gorm:"type:varchar(20)"                               json:"phone_number,omitempty"`
	Dob          *time.Time `gorm:"type:date"                                      json:"dob,omitempty"`
	Address      string     `gorm:"type:varchar(255)"                              json:"address,omitempty"`
	Role         string     `gorm:"type:varchar(20);not null"                      json:"role"` // admin | mentor | intern
	Status       string     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	IsAssigned   bool       `gorm:"not null;default:false"                         json:"is_assigned"`
	IsDeleted    bool       `gorm:"not null;default:false"                         json:"-"`
	BaseModel

	// 关联（仅 intern 角色拥有 1:1 实习信息）
	InternInformation *InternInformation `gorm:"foreignKey:InternID;references:ID" json:"intern_information,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// InternInformation 实习信息表 — 对应 interns_information
// 与 intern 用户 1:1；plan_id 在训练计划指派后写入
type InternInformation struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InternID  string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"intern_id"`
	MentorID  *string   `gorm:"type:uuid"                                      json:"mentor_id,omitempty"`
	PlanID    *string   `gorm:"type:uuid"                                      json:"plan_id,omitempty"`
	Field     string    `gorm:"type:varchar(100)"                              json:"field,omitempty"`
	StartDate time.Time `gorm:"not null"                                       json:"start_date"`
	EndDate   time.Time `gorm:"not null"                                       json:"end_date"`
	Status    string    `gorm:"type:varchar(20);not null;default:'Onboarding'" json:"status"` // Onboarding | InProgress | Completed | Dropped
	IsDeleted bool      `gorm:"not null;default:false"                         json:"-"`
	BaseModel

	// 关联
	Intern *User         `gorm:"foreignKey:InternID;references:ID" json:"intern,omitempty"`
	Mentor *User         `gorm:"foreignKey:MentorID;references:ID" json:"mentor,omitempty"`
	Plan   *TrainingPlan `gorm:"foreignKey:PlanID;references:ID"   json:"plan,omitempty"`
}

func (InternInformation) TableName() string { return "interns_information" }

// [自证通过] internal/model/user.go
