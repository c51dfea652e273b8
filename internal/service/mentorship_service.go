package service

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/repository"
	"alumni_connect_backend/internal/util"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"
)

const maxMessageLength = 200

// MentorshipService 导师申请生命周期引擎。
// 调用方身份都是显式参数，不依赖任何全局会话状态
type MentorshipService struct {
	MentorshipRepo *repository.MentorshipRepository
	UserRepo       *repository.UserRepository
}

func NewMentorshipService(mentorshipRepo *repository.MentorshipRepository, userRepo *repository.UserRepository) *MentorshipService {
	return &MentorshipService{
		MentorshipRepo: mentorshipRepo,
		UserRepo:       userRepo,
	}
}

func validateMessage(message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return "", util.ErrEmptyMessage
	}
	if utf8.RuneCountInString(trimmed) > maxMessageLength {
		return "", util.ErrMessageTooLong
	}
	return trimmed, nil
}

// CreateRequest 发起导师申请。被拒绝后的重新申请走的也是这里：
// 新建一条记录，旧的 rejected 记录作为历史保留。
// 同一对用户的 pending 唯一性由存储层唯一索引保证，这里不做先查后写
func (s *MentorshipService) CreateRequest(requesterID, targetID uint, message string) (*model.MentorshipRequestView, error) {
	if requesterID == targetID {
		return nil, util.ErrSelfRequest
	}

	trimmed, err := validateMessage(message)
	if err != nil {
		return nil, err
	}

	target, err := s.UserRepo.FindByIDCached(targetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTargetNotAlumni
	}
	if err != nil {
		return nil, err
	}
	if target.Role != model.Alumni || target.Disabled {
		return nil, util.ErrTargetNotAlumni
	}

	key := model.PendingPairKey(requesterID, targetID)
	req := &model.MentorshipRequest{
		RequesterID:      requesterID,
		TargetID:         targetID,
		Status:           model.MentorshipPending,
		RequesterMessage: trimmed,
		PendingKey:       &key,
	}

	if err := s.MentorshipRepo.Create(req); err != nil {
		return nil, err
	}

	req.Target = *target
	return s.view(req, requesterID), nil
}

// Accept 接受申请并选定披露等级。只有申请目标本人可以操作，
// 状态前置条件在存储层原子判定，输掉并发竞争返回冲突而不是静默成功
func (s *MentorshipService) Accept(id string, callerID uint, tier model.MentorshipTier, message string) (*model.MentorshipRequestView, error) {
	if !tier.Valid() {
		return nil, util.ErrInvalidTier
	}
	trimmed, err := validateMessage(message)
	if err != nil {
		return nil, err
	}

	req, err := s.MentorshipRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req.TargetID != callerID {
		return nil, util.ErrPermissionDenied
	}

	applied, err := s.MentorshipRepo.Accept(id, tier, trimmed)
	if err != nil {
		return nil, err
	}
	if !applied {
		// 记录还在，只是不再是 pending（双重接受/拒绝竞争）
		return nil, util.ErrRequestNotPending
	}

	updated, err := s.MentorshipRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.view(updated, callerID), nil
}

// Reject 拒绝申请，并发语义同 Accept
func (s *MentorshipService) Reject(id string, callerID uint) (*model.MentorshipRequestView, error) {
	req, err := s.MentorshipRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req.TargetID != callerID {
		return nil, util.ErrPermissionDenied
	}

	applied, err := s.MentorshipRepo.Reject(id)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, util.ErrRequestNotPending
	}

	updated, err := s.MentorshipRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.view(updated, callerID), nil
}

// Delete 申请双方任意一方都可以删除，任何状态下都允许。
// 已删除的 id 再删返回"申请不存在"，语义确定
func (s *MentorshipService) Delete(id string, callerID uint) error {
	req, err := s.MentorshipRepo.FindByID(id)
	if err != nil {
		return err
	}
	if req.RequesterID != callerID && req.TargetID != callerID {
		return util.ErrPermissionDenied
	}
	return s.MentorshipRepo.Delete(id)
}

// Get 申请详情，仅申请双方可见
func (s *MentorshipService) Get(id string, callerID uint) (*model.MentorshipRequestView, error) {
	req, err := s.MentorshipRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req.RequesterID != callerID && req.TargetID != callerID {
		return nil, util.ErrPermissionDenied
	}
	return s.view(req, callerID), nil
}

// ListSent 我发出的申请。联系方式只会出现在这个视角里
func (s *MentorshipService) ListSent(userID uint) ([]*model.MentorshipRequestView, error) {
	reqs, err := s.MentorshipRepo.ListByRequester(userID)
	if err != nil {
		return nil, err
	}
	return s.views(reqs, userID), nil
}

// ListReceived 我收到的申请。viewer 不是申请人，解析器不会披露任何联系方式
func (s *MentorshipService) ListReceived(userID uint) ([]*model.MentorshipRequestView, error) {
	reqs, err := s.MentorshipRepo.ListByTarget(userID)
	if err != nil {
		return nil, err
	}
	return s.views(reqs, userID), nil
}

func (s *MentorshipService) views(reqs []model.MentorshipRequest, viewerID uint) []*model.MentorshipRequestView {
	out := make([]*model.MentorshipRequestView, 0, len(reqs))
	for i := range reqs {
		out = append(out, s.view(&reqs[i], viewerID))
	}
	return out
}

// view 组装对外视图，披露解析每次读取都重新执行
func (s *MentorshipService) view(req *model.MentorshipRequest, viewerID uint) *model.MentorshipRequestView {
	v := &model.MentorshipRequestView{
		ID:               req.ID,
		RequesterID:      req.RequesterID,
		TargetID:         req.TargetID,
		Status:           req.Status,
		RequesterMessage: req.RequesterMessage,
		TargetMessage:    req.TargetMessage,
		Tier:             req.Tier,
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}
	if req.Requester.ID != 0 {
		v.Requester = model.NewUserSummary(&req.Requester)
	}
	if req.Target.ID != 0 {
		v.Target = model.NewUserSummary(&req.Target)
		if contact := ResolveContact(req, viewerID, &req.Target); len(contact) > 0 {
			v.TargetContact = contact
		}
	}
	return v
}
