package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ThanhDong00/internship-management-be/internal/dto"
	"github.com/ThanhDong00/internship-management-be/internal/model"
)

// ── 测试辅助 ──

func setupTestAssignmentService(t *testing.T) (AssignmentService, TrainingPlanService, *mocks) {
	t.Helper()
	repo, m := newMockRepos()
	logger := zap.NewNop()
	asgSvc := NewAssignmentService(repo, logger)
	planSvc := NewTrainingPlanService(repo, logger)

	ctx := context.Background()
	m.skills.Create(ctx, &model.Skill{ID: "skill-Go", Name: "Go", CreatedBy: "mentor-001"})
	m.tasks.Create(ctx, &model.Task{ID: "task-API", Name: "CRUD API", CreatedBy: "mentor-001"})
	return asgSvc, planSvc, m
}

// seedLiveAssignment 预置一个指派给 intern-001 的任务副本
func seedLiveAssignment(m *mocks, status string) *model.Assignment {
	internID := "intern-001"
	a := &model.Assignment{
		TaskID:        "task-API",
		CreatedBy:     "mentor-001",
		AssignedTo:    &internID,
		EstimatedTime: 8,
		Status:        status,
		IsAssigned:    true,
	}
	m.assignments.Create(context.Background(), a)
	return a
}

// ── Create 测试 ──

func TestAssignmentService_Create_Standalone(t *testing.T) {
	svc, _, _ := setupTestAssignmentService(t)

	result, err := svc.Create(context.Background(), &dto.CreateAssignmentRequest{
		TaskID:        "task-API",
		EstimatedTime: 8,
		DueDate:       "2026-10-15",
		SkillIDs:      []string{"skill-Go"},
	}, mentorActor)
	if err != nil {
		t.Fatalf("创建应成功: %v", err)
	}
	if result.Status != model.AssignmentStatusTodo {
		t.Errorf("初始状态应为 Todo，实际=%s", result.Status)
	}
	if result.IsAssigned == nil || *result.IsAssigned {
		t.Error("新任务应为未指派状态")
	}
	if result.PlanID != "" {
		t.Error("独立任务不应有计划归属")
	}
	if len(result.Skills) != 1 {
		t.Errorf("期望1个技能关联，实际=%d", len(result.Skills))
	}
}

func TestAssignmentService_Create_UnknownTask(t *testing.T) {
	svc, _, _ := setupTestAssignmentService(t)

	_, err := svc.Create(context.Background(), &dto.CreateAssignmentRequest{
		TaskID:        "task-不存在",
		EstimatedTime: 8,
		SkillIDs:      []string{"skill-Go"},
	}, mentorActor)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
}

func TestAssignmentService_Create_InternForbidden(t *testing.T) {
	svc, _, _ := setupTestAssignmentService(t)

	_, err := svc.Create(context.Background(), &dto.CreateAssignmentRequest{
		TaskID:        "task-API",
		EstimatedTime: 8,
		SkillIDs:      []string{"skill-Go"},
	}, internActor)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("期望 ErrPermissionDenied，实际: %v", err)
	}
}

func TestAssignmentService_Create_EmptySkillList(t *testing.T) {
	svc, _, _ := setupTestAssignmentService(t)

	_, err := svc.Create(context.Background(), &dto.CreateAssignmentRequest{
		TaskID:        "task-API",
		EstimatedTime: 8,
	}, mentorActor)
	if !errors.Is(err, ErrSkillListEmpty) {
		t.Errorf("期望 ErrSkillListEmpty，实际: %v", err)
	}
}

func TestAssignmentService_Create_NonPositiveEstimatedTime(t *testing.T) {
	svc, _, _ := setupTestAssignmentService(t)

	for _, hours := range []int{0, -4} {
		_, err := svc.Create(context.Background(), &dto.CreateAssignmentRequest{
			TaskID:        "task-API",
			EstimatedTime: hours,
			SkillIDs:      []string{"skill-Go"},
		}, mentorActor)
		if !errors.Is(err, ErrEstimatedTimeInvalid) {
			t.Errorf("预计耗时=%d 期望 ErrEstimatedTimeInvalid，实际: %v", hours, err)
		}
	}
}

// ── 状态机测试 ──

func TestAssignmentService_UpdateStatus_ToggleTodoInProgress(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	a := seedLiveAssignment(m, model.AssignmentStatusTodo)

	result, err := svc.UpdateStatus(context.Background(), a.ID,
		&dto.UpdateAssignmentStatusRequest{Status: model.AssignmentStatusInProgress}, internActor)
	if err != nil {
		t.Fatalf("状态切换应成功: %v", err)
	}
	if result.Status != model.AssignmentStatusInProgress {
		t.Errorf("期望 InProgress，实际=%s", result.Status)
	}

	// 允许改回 Todo
	result, err = svc.UpdateStatus(context.Background(), a.ID,
		&dto.UpdateAssignmentStatusRequest{Status: model.AssignmentStatusTodo}, internActor)
	if err != nil {
		t.Fatalf("状态切换应成功: %v", err)
	}
	if result.Status != model.AssignmentStatusTodo {
		t.Errorf("期望 Todo，实际=%s", result.Status)
	}
}

func TestAssignmentService_UpdateStatus_LockedAfterSubmit(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	a := seedLiveAssignment(m, model.AssignmentStatusSubmitted)

	_, err := svc.UpdateStatus(context.Background(), a.ID,
		&dto.UpdateAssignmentStatusRequest{Status: model.AssignmentStatusTodo}, internActor)
	if !errors.Is(err, ErrStatusTransition) {
		t.Errorf("已提交任务状态应被锁定，期望 ErrStatusTransition，实际: %v", err)
	}
}

func TestAssignmentService_UpdateStatus_DirectTerminalRejected(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	a := seedLiveAssignment(m, model.AssignmentStatusInProgress)

	// Submitted/Reviewed 不能通过本入口直接写入
	for _, status := range []string{model.AssignmentStatusSubmitted, model.AssignmentStatusReviewed} {
		_, err := svc.UpdateStatus(context.Background(), a.ID,
			&dto.UpdateAssignmentStatusRequest{Status: status}, internActor)
		if !errors.Is(err, ErrStatusTransition) {
			t.Errorf("直接设置 %s 期望 ErrStatusTransition，实际: %v", status, err)
		}
	}

	got, _ := m.assignments.GetByID(context.Background(), a.ID)
	if got.Status != model.AssignmentStatusInProgress {
		t.Errorf("被拒绝的流转不应落库，期望 InProgress，实际=%s", got.Status)
	}
}

func TestAssignmentService_UpdateStatus_NotAssignee(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	a := seedLiveAssignment(m, model.AssignmentStatusTodo)

	other := dto.Actor{ID: "intern-002", Role: model.RoleIntern}
	_, err := svc.UpdateStatus(context.Background(), a.ID,
		&dto.UpdateAssignmentStatusRequest{Status: model.AssignmentStatusInProgress}, other)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("期望 ErrPermissionDenied，实际: %v", err)
	}
}

func TestAssignmentService_Submit_Success(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	a := seedLiveAssignment(m, model.AssignmentStatusInProgress)

	result, err := svc.Submit(context.Background(), a.ID,
		&dto.SubmitAssignmentRequest{SubmittedLink: "https://github.com/example/pr/1"}, internActor)
	if err != nil {
		t.Fatalf("提交应成功: %v", err)
	}
	if result.Status != model.AssignmentStatusSubmitted {
		t.Errorf("期望 Submitted，实际=%s", result.Status)
	}
	if result.SubmittedLink == "" || result.SubmittedAt == "" {
		t.Error("提交后应记录链接与时间")
	}
}

func TestAssignmentService_Submit_AlreadyReviewed(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	a := seedLiveAssignment(m, model.AssignmentStatusReviewed)

	_, err := svc.Submit(context.Background(), a.ID,
		&dto.SubmitAssignmentRequest{SubmittedLink: "https://example.com"}, internActor)
	if !errors.Is(err, ErrStatusTransition) {
		t.Errorf("期望 ErrStatusTransition，实际: %v", err)
	}
}

func TestAssignmentService_Review_Success(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	a := seedLiveAssignment(m, model.AssignmentStatusSubmitted)

	result, err := svc.Review(context.Background(), a.ID,
		&dto.ReviewAssignmentRequest{Feedback: "代码结构清晰，测试覆盖到位"}, mentorActor)
	if err != nil {
		t.Fatalf("评审应成功: %v", err)
	}
	if result.Status != model.AssignmentStatusReviewed {
		t.Errorf("期望 Reviewed，实际=%s", result.Status)
	}
	if result.Feedback == "" {
		t.Error("评审后应记录反馈")
	}
}

func TestAssignmentService_Review_WrongStatus(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	a := seedLiveAssignment(m, model.AssignmentStatusTodo)

	_, err := svc.Review(context.Background(), a.ID,
		&dto.ReviewAssignmentRequest{Feedback: "太早了"}, mentorActor)
	if !errors.Is(err, ErrStatusTransition) {
		t.Errorf("期望 ErrStatusTransition，实际: %v", err)
	}
}

func TestAssignmentService_Review_InternForbidden(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	a := seedLiveAssignment(m, model.AssignmentStatusSubmitted)

	_, err := svc.Review(context.Background(), a.ID,
		&dto.ReviewAssignmentRequest{Feedback: "不行"}, internActor)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("期望 ErrPermissionDenied，实际: %v", err)
	}
}

// ── Delete / Restore 测试 ──

func TestAssignmentService_Delete_GuardedBySubmitted(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	a := seedLiveAssignment(m, model.AssignmentStatusSubmitted)

	err := svc.Delete(context.Background(), a.ID, mentorActor)
	if !errors.Is(err, ErrAssignmentUndeletable) {
		t.Fatalf("期望 ErrAssignmentUndeletable，实际: %v", err)
	}
	if !strings.Contains(err.Error(), model.AssignmentStatusSubmitted) {
		t.Errorf("错误应说明 Submitted 状态原因，实际: %v", err)
	}
}

func TestAssignmentService_Delete_GuardedByActiveStatuses(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	ctx := context.Background()

	// 已进入流程的任务一律不可删除
	for _, status := range []string{
		model.AssignmentStatusInProgress,
		model.AssignmentStatusSubmitted,
		model.AssignmentStatusReviewed,
	} {
		a := seedLiveAssignment(m, status)
		err := svc.Delete(ctx, a.ID, mentorActor)
		if !errors.Is(err, ErrAssignmentUndeletable) {
			t.Fatalf("状态=%s 期望 ErrAssignmentUndeletable，实际: %v", status, err)
		}
		if !strings.Contains(err.Error(), status) {
			t.Errorf("错误应说明 %s 状态原因，实际: %v", status, err)
		}
		if got, _ := m.assignments.GetByID(ctx, a.ID); got == nil || got.IsDeleted {
			t.Errorf("状态=%s 被拒绝的删除不应落库", status)
		}
	}
}

func TestAssignmentService_Delete_GuardedByDeletedPlan(t *testing.T) {
	svc, planSvc, m := setupTestAssignmentService(t)
	ctx := context.Background()

	plan, err := planSvc.Create(ctx, &dto.CreateTrainingPlanRequest{
		Name: "Go 后端入门",
		Assignments: []dto.PlanAssignmentItem{
			{TaskID: "task-API", EstimatedTime: 8, SkillIDs: []string{"skill-Go"}},
		},
	}, mentorActor)
	if err != nil {
		t.Fatalf("创建计划应成功: %v", err)
	}

	// 计划内的已指派副本
	internID := "intern-001"
	a := &model.Assignment{
		PlanID:        &plan.ID,
		TaskID:        "task-API",
		CreatedBy:     "mentor-001",
		AssignedTo:    &internID,
		EstimatedTime: 8,
		Status:        model.AssignmentStatusTodo,
		IsAssigned:    true,
	}
	m.assignments.Create(ctx, a)

	if err := planSvc.Delete(ctx, plan.ID, mentorActor); err != nil {
		t.Fatalf("删除计划应成功: %v", err)
	}

	err = svc.Delete(ctx, a.ID, mentorActor)
	if !errors.Is(err, ErrAssignmentUndeletable) {
		t.Fatalf("所属计划已删除时期望 ErrAssignmentUndeletable，实际: %v", err)
	}
	if !strings.Contains(err.Error(), "训练计划") {
		t.Errorf("错误应说明所属计划已删除，实际: %v", err)
	}
}

func TestAssignmentService_Delete_ThenRestore(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	a := seedLiveAssignment(m, model.AssignmentStatusTodo)
	ctx := context.Background()
	m.asgSkills.BatchCreate(ctx, []model.AssignmentSkill{{AssignmentID: a.ID, SkillID: "skill-Go"}})

	if err := svc.Delete(ctx, a.ID, mentorActor); err != nil {
		t.Fatalf("删除应成功: %v", err)
	}
	if _, err := svc.GetByID(ctx, a.ID, mentorActor); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("删除后查询应返回 ErrAssignmentNotFound，实际: %v", err)
	}
	if links, _ := m.asgSkills.ListByAssignmentID(ctx, a.ID); len(links) != 0 {
		t.Errorf("技能关联应被级联删除，剩余=%d", len(links))
	}

	restored, err := svc.Restore(ctx, a.ID, mentorActor)
	if err != nil {
		t.Fatalf("恢复应成功: %v", err)
	}
	if len(restored.Skills) != 1 {
		t.Errorf("恢复后技能关联应翻回，实际=%d", len(restored.Skills))
	}
}

// ── List / 范围收窄测试 ──

func TestAssignmentService_List_InternScopeForced(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	ctx := context.Background()

	seedLiveAssignment(m, model.AssignmentStatusTodo)
	// 另一实习生的副本 + 一个模板行
	otherID := "intern-002"
	m.assignments.Create(ctx, &model.Assignment{
		TaskID: "task-API", CreatedBy: "mentor-001", AssignedTo: &otherID,
		EstimatedTime: 4, Status: model.AssignmentStatusTodo, IsAssigned: true,
	})
	m.assignments.Create(ctx, &model.Assignment{
		TaskID: "task-API", CreatedBy: "mentor-001",
		EstimatedTime: 4, Status: model.AssignmentStatusTodo, IsAssigned: false,
	})

	// intern 即使显式要求 is_assigned=false 也只能看到自己的副本
	notAssigned := false
	result, total, err := svc.List(ctx,
		&dto.AssignmentListRequest{IsAssigned: &notAssigned},
		&dto.PaginationRequest{}, internActor)
	if err != nil {
		t.Fatalf("列出应成功: %v", err)
	}
	if total != 1 || len(result) != 1 {
		t.Fatalf("intern 应只看到自己的副本：期望1，实际=%d", len(result))
	}
	if result[0].AssignedTo != internActor.ID {
		t.Errorf("结果应属于 intern-001，实际=%s", result[0].AssignedTo)
	}
	if result[0].IsAssigned != nil {
		t.Error("intern 视角不应暴露 is_assigned 标记")
	}
}

func TestAssignmentService_List_MentorSeesOwnCreated(t *testing.T) {
	svc, _, m := setupTestAssignmentService(t)
	ctx := context.Background()

	seedLiveAssignment(m, model.AssignmentStatusTodo)
	m.assignments.Create(ctx, &model.Assignment{
		TaskID: "task-API", CreatedBy: "mentor-002",
		EstimatedTime: 4, Status: model.AssignmentStatusTodo,
	})

	result, total, err := svc.List(ctx, &dto.AssignmentListRequest{}, &dto.PaginationRequest{}, mentorActor)
	if err != nil {
		t.Fatalf("列出应成功: %v", err)
	}
	if total != 1 || len(result) != 1 {
		t.Errorf("mentor 应只看到自己创建的任务：期望1，实际=%d", len(result))
	}
}

// ── 计划删除与已提交副本的交互 ──

func TestAssignmentService_SubmittedCopySurvivesPlanOps(t *testing.T) {
	asgSvc, planSvc, m := setupTestAssignmentService(t)
	ctx := context.Background()

	// 建计划并指派
	plan, err := planSvc.Create(ctx, &dto.CreateTrainingPlanRequest{
		Name:     "Go 后端入门",
		IsPublic: true,
		Assignments: []dto.PlanAssignmentItem{
			{TaskID: "task-API", EstimatedTime: 8, SkillIDs: []string{"skill-Go"}},
		},
	}, mentorActor)
	if err != nil {
		t.Fatalf("创建计划应成功: %v", err)
	}
	seedIntern(m, "intern-001")
	if err := planSvc.AssignToIntern(ctx, plan.ID, &dto.AssignPlanRequest{InternID: "intern-001"}, adminActor); err != nil {
		t.Fatalf("指派应成功: %v", err)
	}

	// 实习生提交自己的副本
	live, _ := m.assignments.ListLiveByPlanID(ctx, plan.ID)
	if len(live) != 1 {
		t.Fatalf("期望1个副本，实际=%d", len(live))
	}
	if _, err := asgSvc.Submit(ctx, live[0].ID,
		&dto.SubmitAssignmentRequest{SubmittedLink: "https://example.com/pr/1"}, internActor); err != nil {
		t.Fatalf("提交应成功: %v", err)
	}

	// 计划删除被在册实习生挡下，副本不受影响
	if err := planSvc.Delete(ctx, plan.ID, mentorActor); !errors.Is(err, ErrPlanHasInterns) {
		t.Fatalf("期望 ErrPlanHasInterns，实际: %v", err)
	}
	got, err := asgSvc.GetByID(ctx, live[0].ID, internActor)
	if err != nil {
		t.Fatalf("副本应仍可访问: %v", err)
	}
	if got.Status != model.AssignmentStatusSubmitted {
		t.Errorf("副本状态应保持 Submitted，实际=%s", got.Status)
	}
}

// [自证通过] internal/service/assignment_service_test.go
