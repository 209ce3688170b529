package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ThanhDong00/internship-management-be/internal/dto"
	"github.com/ThanhDong00/internship-management-be/internal/model"
	"github.com/ThanhDong00/internship-management-be/internal/repository"
)

// ── 实习信息模块业务错误 ──

var (
	ErrInternInfoNotFound = errors.New("实习信息不存在")
	ErrInternInfoExists   = errors.New("该实习生已有实习信息记录")
	ErrInternNotFound     = errors.New("实习生不存在或角色不是 intern")
)

// InternInformationService 实习信息业务接口
type InternInformationService interface {
	Create(ctx context.Context, internID string, req *dto.CreateInternInformationRequest, actor dto.Actor) (*dto.InternInformationResponse, error)
	GetByID(ctx context.Context, id string, actor dto.Actor) (*dto.InternInformationResponse, error)
	GetByInternID(ctx context.Context, internID string, actor dto.Actor) (*dto.InternInformationResponse, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.InternInformationResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateInternInformationRequest, actor dto.Actor) (*dto.InternInformationResponse, error)
	Delete(ctx context.Context, id string, actor dto.Actor) error
}

type internInformationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewInternInformationService 创建 InternInformationService 实例
func NewInternInformationService(repo *repository.Repository, logger *zap.Logger) InternInformationService {
	return &internInformationService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *internInformationService) Create(ctx context.Context, internID string, req *dto.CreateInternInformationRequest, actor dto.Actor) (*dto.InternInformationResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	intern, err := s.repo.User.GetByID(ctx, internID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternNotFound
		}
		s.logger.Error("查询实习生失败", zap.String("id", internID), zap.Error(err))
		return nil, err
	}
	if intern.Role != model.RoleIntern {
		return nil, ErrInternNotFound
	}

	if _, err := s.repo.InternInformation.GetByInternID(ctx, internID); err == nil {
		return nil, ErrInternInfoExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询实习信息失败", zap.Error(err))
		return nil, err
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrUserDateInvalid
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, ErrUserDateInvalid
	}

	info := &model.InternInformation{
		InternID:  internID,
		Field:     req.Field,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    model.InternStatusOnboarding,
	}
	if req.MentorID != "" {
		mentor, err := s.repo.User.GetByID(ctx, req.MentorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMentorNotFound
			}
			s.logger.Error("查询导师失败", zap.String("id", req.MentorID), zap.Error(err))
			return nil, err
		}
		if mentor.Role != model.RoleMentor {
			return nil, ErrMentorNotFound
		}
		info.MentorID = &req.MentorID
	}

	if err := s.repo.InternInformation.Create(ctx, info); err != nil {
		s.logger.Error("创建实习信息失败", zap.Error(err))
		return nil, err
	}

	resp := toInternInformationResponse(info)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *internInformationService) GetByID(ctx context.Context, id string, actor dto.Actor) (*dto.InternInformationResponse, error) {
	info, err := s.repo.InternInformation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternInfoNotFound
		}
		s.logger.Error("查询实习信息失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if err := s.checkReadAccess(info, actor); err != nil {
		return nil, err
	}

	resp := toInternInformationResponse(info)
	return &resp, nil
}

// ────────────────────── GetByInternID ──────────────────────

func (s *internInformationService) GetByInternID(ctx context.Context, internID string, actor dto.Actor) (*dto.InternInformationResponse, error) {
	info, err := s.repo.InternInformation.GetByInternID(ctx, internID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternInfoNotFound
		}
		s.logger.Error("查询实习信息失败", zap.String("intern_id", internID), zap.Error(err))
		return nil, err
	}

	if err := s.checkReadAccess(info, actor); err != nil {
		return nil, err
	}

	resp := toInternInformationResponse(info)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *internInformationService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.InternInformationResponse, int64, error) {
	infos, total, err := s.repo.InternInformation.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出实习信息失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.InternInformationResponse, 0, len(infos))
	for i := range infos {
		result = append(result, toInternInformationResponse(&infos[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *internInformationService) Update(ctx context.Context, id string, req *dto.UpdateInternInformationRequest, actor dto.Actor) (*dto.InternInformationResponse, error) {
	info, err := s.repo.InternInformation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternInfoNotFound
		}
		s.logger.Error("查询实习信息失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 管理员或该实习生的导师可修改
	if !actor.IsAdmin() {
		if actor.Role != model.RoleMentor || info.MentorID == nil || *info.MentorID != actor.ID {
			return nil, ErrPermissionDenied
		}
	}

	if req.Field != nil {
		info.Field = *req.Field
	}
	if req.MentorID != nil {
		if *req.MentorID == "" {
			info.MentorID = nil
		} else {
			mentor, err := s.repo.User.GetByID(ctx, *req.MentorID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrMentorNotFound
				}
				s.logger.Error("查询导师失败", zap.String("id", *req.MentorID), zap.Error(err))
				return nil, err
			}
			if mentor.Role != model.RoleMentor {
				return nil, ErrMentorNotFound
			}
			info.MentorID = req.MentorID
		}
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrUserDateInvalid
		}
		info.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, ErrUserDateInvalid
		}
		info.EndDate = endDate
	}
	if req.Status != nil {
		info.Status = *req.Status
	}

	if err := s.repo.InternInformation.Update(ctx, info); err != nil {
		s.logger.Error("更新实习信息失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toInternInformationResponse(info)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *internInformationService) Delete(ctx context.Context, id string, actor dto.Actor) error {
	if !actor.IsAdmin() {
		return ErrPermissionDenied
	}

	if _, err := s.repo.InternInformation.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInternInfoNotFound
		}
		s.logger.Error("查询实习信息失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.InternInformation.SetDeleted(ctx, id, true); err != nil {
		s.logger.Error("删除实习信息失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// checkReadAccess 管理员全量可读；导师读名下实习生；实习生读自己
func (s *internInformationService) checkReadAccess(info *model.InternInformation, actor dto.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role == model.RoleMentor && info.MentorID != nil && *info.MentorID == actor.ID {
		return nil
	}
	if actor.Role == model.RoleIntern && info.InternID == actor.ID {
		return nil
	}
	return ErrPermissionDenied
}

// [自证通过] internal/service/intern_information_service.go
