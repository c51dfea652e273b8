package service

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/repository"
	"alumni_connect_backend/internal/util"
	"errors"
	"strings"
	"unicode/utf8"
)

type TestimonialService struct {
	TestimonialRepo *repository.TestimonialRepository
}

func NewTestimonialService(testimonialRepo *repository.TestimonialRepository) *TestimonialService {
	return &TestimonialService{TestimonialRepo: testimonialRepo}
}

func (s *TestimonialService) Submit(userID uint, content string) (*model.Testimonial, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, errors.New("感言内容不能为空")
	}
	if utf8.RuneCountInString(trimmed) > 500 {
		return nil, errors.New("感言长度不能超过500字符")
	}

	t := &model.Testimonial{
		UserID:  userID,
		Content: trimmed,
	}
	if err := s.TestimonialRepo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TestimonialService) ListApproved(page, limit int) ([]model.Testimonial, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.TestimonialRepo.ListApproved(limit, (page-1)*limit)
}

func (s *TestimonialService) ListAll(page, limit int) ([]model.Testimonial, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.TestimonialRepo.ListAll(limit, (page-1)*limit)
}

func (s *TestimonialService) Approve(id uint) error {
	return s.TestimonialRepo.SetApproved(id, true)
}

func (s *TestimonialService) Delete(id uint, callerID uint, isAdmin bool) error {
	t, err := s.TestimonialRepo.FindByID(id)
	if err != nil {
		return err
	}
	if !isAdmin && t.UserID != callerID {
		return util.ErrPermissionDenied
	}
	return s.TestimonialRepo.Delete(id)
}
