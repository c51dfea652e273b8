package repository

import (
	"alumni_connect_backend/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewUserRepository(db *gorm.DB, rdb *redis.Client) *UserRepository {
	return &UserRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("directory:user:%d", id)
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

// FindByIDCached 带缓存的用户查询（仅服务端内部使用，
// 缓存的是用户记录本身，披露结果永远不缓存）
func (r *UserRepository) FindByIDCached(id uint) (*model.User, error) {
	if r.Redis == nil {
		return r.FindByID(id)
	}

	key := userCacheKey(id)
	cached, err := r.Redis.Get(r.ctx, key).Result()
	if err == nil && cached != "" {
		var user model.User
		if err := json.Unmarshal([]byte(cached), &user); err == nil {
			return &user, nil
		}
	}

	// 缓存失效，回源数据库
	user, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(user); err == nil {
		r.Redis.Set(r.ctx, key, data, 24*time.Hour)
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	err := r.DB.Save(user).Error
	if err == nil && r.Redis != nil {
		// 同步清除用户缓存，联系方式修改立即生效
		r.Redis.Del(r.ctx, userCacheKey(user.ID))
	}
	return err
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).
		Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

// ListAlumni 校友目录查询，支持关键词和毕业年份筛选
func (r *UserRepository) ListAlumni(search string, batch int, limit, offset int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.DB.Model(&model.User{}).
		Where("role = ? AND disabled = ?", model.Alumni, false)

	if search != "" {
		searchTerm := "%" + search + "%"
		db = db.Where("(name LIKE ? OR company LIKE ? OR designation LIKE ?)", searchTerm, searchTerm, searchTerm)
	}
	if batch > 0 {
		db = db.Where("batch = ?", batch)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("batch DESC, name ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error

	return users, total, err
}

// ListUsers 管理后台用户列表
func (r *UserRepository) ListUsers(role string, search string, limit, offset int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.DB.Model(&model.User{})
	if role != "" {
		db = db.Where("role = ?", role)
	}
	if search != "" {
		searchTerm := "%" + search + "%"
		db = db.Where("(name LIKE ? OR email LIKE ?)", searchTerm, searchTerm)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error

	return users, total, err
}
