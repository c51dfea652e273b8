package service

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/repository"
	"alumni_connect_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// ProfileUpdate 个人资料可修改的字段，联系方式属于本人私有数据，
// 修改后对已授权申请人的披露立即生效（用户缓存同步失效）
type ProfileUpdate struct {
	Name        string  `json:"name"`
	Batch       int     `json:"batch"`
	Company     string  `json:"company"`
	Designation string  `json:"designation"`
	Bio         string  `json:"bio"`
	LinkedinURL *string `json:"linkedinUrl"`
	PhoneNumber *string `json:"phoneNumber"`
}

// OwnProfile 本人视角的资料，包含自己的联系方式
type OwnProfile struct {
	model.UserSummary
	Email       string  `json:"email"`
	Bio         string  `json:"bio,omitempty"`
	LinkedinURL *string `json:"linkedinUrl,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

func (s *UserService) GetOwnProfile(userID uint) (*OwnProfile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &OwnProfile{
		UserSummary: *model.NewUserSummary(user),
		Email:       user.Email,
		Bio:         user.Bio,
		LinkedinURL: user.LinkedinURL,
		PhoneNumber: user.PhoneNumber,
	}, nil
}

func (s *UserService) UpdateProfile(userID uint, update *ProfileUpdate) (*OwnProfile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	user.Batch = update.Batch
	user.Company = update.Company
	user.Designation = update.Designation
	user.Bio = update.Bio
	user.LinkedinURL = update.LinkedinURL
	user.PhoneNumber = update.PhoneNumber

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return s.GetOwnProfile(userID)
}

func (s *UserService) UpdateAvatar(userID uint, avatarURL string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}
	user.Avatar = avatarURL
	return s.UserRepo.Update(user)
}

// AdminUserView 管理后台的用户条目，邮箱在这里显式带出
type AdminUserView struct {
	model.UserSummary
	Email     string    `json:"email"`
	Disabled  bool      `json:"disabled"`
	LastLogin time.Time `json:"lastLogin"`
	LastSeen  time.Time `json:"lastSeen"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListUsers 管理后台用户列表
func (s *UserService) ListUsers(role, search string, page, limit int) ([]*AdminUserView, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	users, total, err := s.UserRepo.ListUsers(role, search, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*AdminUserView, 0, len(users))
	for i := range users {
		u := &users[i]
		views = append(views, &AdminUserView{
			UserSummary: *model.NewUserSummary(u),
			Email:       u.Email,
			Disabled:    u.Disabled,
			LastLogin:   u.LastLogin,
			LastSeen:    u.LastSeen,
			CreatedAt:   u.CreatedAt,
		})
	}
	return views, total, nil
}

// SetDisabled 禁用/启用账号
func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	}
	if err != nil {
		return err
	}
	user.Disabled = disabled
	return s.UserRepo.Update(user)
}
