package repository

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type TestimonialRepository struct {
	DB *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) *TestimonialRepository {
	return &TestimonialRepository{DB: db}
}

func (r *TestimonialRepository) Create(t *model.Testimonial) error {
	return r.DB.Create(t).Error
}

func (r *TestimonialRepository) FindByID(id uint) (*model.Testimonial, error) {
	var t model.Testimonial
	err := r.DB.Preload("User").First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTestimonialNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListApproved 对外展示的已审核感言
func (r *TestimonialRepository) ListApproved(limit, offset int) ([]model.Testimonial, int64, error) {
	var list []model.Testimonial
	var total int64

	db := r.DB.Model(&model.Testimonial{}).Where("approved = ?", true)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, total, err
}

// ListAll 管理后台列表，含未审核
func (r *TestimonialRepository) ListAll(limit, offset int) ([]model.Testimonial, int64, error) {
	var list []model.Testimonial
	var total int64

	db := r.DB.Model(&model.Testimonial{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, total, err
}

func (r *TestimonialRepository) SetApproved(id uint, approved bool) error {
	res := r.DB.Model(&model.Testimonial{}).
		Where("id = ?", id).
		Update("approved", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrTestimonialNotFound
	}
	return nil
}

func (r *TestimonialRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Testimonial{}, id).Error
}
