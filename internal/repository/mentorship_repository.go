package repository

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// MentorshipRepository 导师申请存储层。
// 生命周期相关的写操作都走条件更新，状态前置条件在数据库层面原子判定
type MentorshipRepository struct {
	DB *gorm.DB
}

func NewMentorshipRepository(db *gorm.DB) *MentorshipRepository {
	return &MentorshipRepository{DB: db}
}

func (r *MentorshipRepository) Create(req *model.MentorshipRequest) error {
	err := r.DB.Create(req).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// pending_key 唯一索引冲突：同一对用户已有待处理申请
		return util.ErrDuplicateRequest
	}
	return err
}

func (r *MentorshipRepository) FindByID(id string) (*model.MentorshipRequest, error) {
	var req model.MentorshipRequest
	err := r.DB.Preload("Requester").Preload("Target").First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *MentorshipRepository) ListByRequester(requesterID uint) ([]model.MentorshipRequest, error) {
	var reqs []model.MentorshipRequest
	err := r.DB.Preload("Target").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *MentorshipRepository) ListByTarget(targetID uint) ([]model.MentorshipRequest, error) {
	var reqs []model.MentorshipRequest
	err := r.DB.Preload("Requester").
		Where("target_id = ?", targetID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// Accept 接受申请。status、tier、target_message、pending_key 在同一条
// UPDATE 里落库，要么全部生效要么全不生效。
// WHERE 带上 status = pending 做乐观并发控制：两个并发的 accept/reject
// 只有一个能命中，输掉的一方拿到 applied = false
func (r *MentorshipRepository) Accept(id string, tier model.MentorshipTier, message string) (bool, error) {
	res := r.DB.Model(&model.MentorshipRequest{}).
		Where("id = ? AND status = ?", id, model.MentorshipPending).
		Updates(map[string]interface{}{
			"status":         model.MentorshipAccepted,
			"tier":           tier,
			"target_message": message,
			"pending_key":    nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Reject 拒绝申请，并发控制同 Accept
func (r *MentorshipRepository) Reject(id string) (bool, error) {
	res := r.DB.Model(&model.MentorshipRequest{}).
		Where("id = ? AND status = ?", id, model.MentorshipPending).
		Updates(map[string]interface{}{
			"status":      model.MentorshipRejected,
			"pending_key": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete 硬删除，对不存在的记录天然幂等
func (r *MentorshipRepository) Delete(id string) error {
	return r.DB.Delete(&model.MentorshipRequest{}, "id = ?", id).Error
}
