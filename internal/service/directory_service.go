package service

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/repository"
	"alumni_connect_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// DirectoryService 校友目录。目录永远只输出 UserSummary，
// 联系方式的唯一出口是导师申请的披露解析器
type DirectoryService struct {
	UserRepo *repository.UserRepository
}

func NewDirectoryService(userRepo *repository.UserRepository) *DirectoryService {
	return &DirectoryService{UserRepo: userRepo}
}

func (s *DirectoryService) ListAlumni(search string, batch, page, limit int) ([]*model.UserSummary, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.UserRepo.ListAlumni(search, batch, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]*model.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, model.NewUserSummary(&users[i]))
	}
	return summaries, total, nil
}

type AlumnusProfile struct {
	model.UserSummary
	Bio string `json:"bio,omitempty"`
}

func (s *DirectoryService) GetAlumnus(id uint) (*AlumnusProfile, error) {
	user, err := s.UserRepo.FindByIDCached(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if user.Role != model.Alumni || user.Disabled {
		return nil, util.ErrUserNotFound
	}
	return &AlumnusProfile{
		UserSummary: *model.NewUserSummary(user),
		Bio:         user.Bio,
	}, nil
}
