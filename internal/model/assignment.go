package model

import "time"

// ── 实习任务状态常量 ──
// 状态机：Todo → InProgress → Submitted → Reviewed

const (
	AssignmentStatusTodo       = "Todo"
	AssignmentStatusInProgress = "InProgress"
	AssignmentStatusSubmitted  = "Submitted"
	AssignmentStatusReviewed   = "Reviewed"
)

// Assignment 实习任务表 — 对应 assignments
//
// 同一张表承载两种行：
//   - 模板行 is_assigned=false：描述计划内规划中的工作，不属于任何实习生；
//   - 实例行 is_assigned=true：指派计划时从模板复制出的实习生专属副本，
//     独立推进状态机，计划的更新/删除永不触碰。
type Assignment struct {
	ID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PlanID        *string    `gorm:"type:uuid"                                      json:"plan_id,omitempty"` // 可为空：独立任务无归属计划
	TaskID        string     `gorm:"type:uuid;not null"                             json:"task_id"`
	CreatedBy     string     `gorm:"type:uuid"                                      json:"created_by"`
	AssignedTo    *string    `gorm:"type:uuid"                                      json:"assigned_to,omitempty"`
	EstimatedTime int        `gorm:"not null"                                       json:"estimated_time"` // 预估工时（小时）
	DueDate       *time.Time `json:"due_date,omitempty"`
	SubmittedLink string     `gorm:"type:varchar(500)"                              json:"submitted_link,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	Feedback      string     `gorm:"type:varchar(1000)"                             json:"feedback,omitempty"`
	Status        string     `gorm:"type:varchar(20);not null;default:'Todo'"       json:"status"`
	IsAssigned    bool       `gorm:"not null;default:false"                         json:"is_assigned"`
	IsDeleted     bool       `gorm:"not null;default:false"                         json:"-"`
	BaseModel

	// 关联
	Task     *Task             `gorm:"foreignKey:TaskID;references:ID"     json:"task,omitempty"`
	Skills   []AssignmentSkill `gorm:"foreignKey:AssignmentID;references:ID" json:"skills,omitempty"`
	Assignee *User             `gorm:"foreignKey:AssignedTo;references:ID" json:"assignee,omitempty"`
	Plan     *TrainingPlan     `gorm:"foreignKey:PlanID;references:ID"     json:"plan,omitempty"`
}

func (Assignment) TableName() string { return "assignments" }

// AssignmentSkill 任务-技能关联表 — 对应 assignment_skills
type AssignmentSkill struct {
	ID           string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AssignmentID string `gorm:"type:uuid;not null"                             json:"assignment_id"`
	SkillID      string `gorm:"type:uuid;not null"                             json:"skill_id"`
	IsDeleted    bool   `gorm:"not null;default:false"                         json:"-"`
	BaseModel

	// 关联
	Skill *Skill `gorm:"foreignKey:SkillID;references:ID" json:"skill,omitempty"`
}

func (AssignmentSkill) TableName() string { return "assignment_skills" }

// [自证通过] internal/model/assignment.go
