package service

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/repository"
	"errors"
	"strings"
	"time"
)

type EventService struct {
	EventRepo *repository.EventRepository
}

func NewEventService(eventRepo *repository.EventRepository) *EventService {
	return &EventService{EventRepo: eventRepo}
}

type EventInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime"`
	Capacity    int       `json:"capacity"`
	ImageURL    string    `json:"imageUrl"`
}

func (in *EventInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("活动标题不能为空")
	}
	if !in.EndTime.IsZero() && in.EndTime.Before(in.StartTime) {
		return errors.New("活动结束时间不能早于开始时间")
	}
	if in.Capacity < 0 {
		return errors.New("活动人数上限不能为负")
	}
	return nil
}

func (s *EventService) Create(input *EventInput, createdBy uint) (*model.Event, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	event := &model.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Location:    input.Location,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Capacity:    input.Capacity,
		ImageURL:    input.ImageURL,
		CreatedBy:   createdBy,
	}
	if err := s.EventRepo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Update(id uint, input *EventInput) (*model.Event, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	event, err := s.EventRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	event.Title = strings.TrimSpace(input.Title)
	event.Description = input.Description
	event.Location = input.Location
	event.StartTime = input.StartTime
	event.EndTime = input.EndTime
	event.Capacity = input.Capacity
	if input.ImageURL != "" {
		event.ImageURL = input.ImageURL
	}

	if err := s.EventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Delete(id uint) error {
	if _, err := s.EventRepo.FindByID(id); err != nil {
		return err
	}
	return s.EventRepo.Delete(id)
}

func (s *EventService) List(scope string, page, limit int, viewerID uint) ([]*model.EventView, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	events, total, err := s.EventRepo.List(scope, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*model.EventView, 0, len(events))
	for i := range events {
		view, err := s.buildView(&events[i], viewerID)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

func (s *EventService) Get(id uint, viewerID uint) (*model.EventView, error) {
	event, err := s.EventRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.buildView(event, viewerID)
}

func (s *EventService) Register(eventID, userID uint) error {
	event, err := s.EventRepo.FindByID(eventID)
	if err != nil {
		return err
	}
	if event.StartTime.Before(time.Now()) {
		return errors.New("活动已开始，无法报名")
	}
	return s.EventRepo.Register(eventID, userID, event.Capacity)
}

func (s *EventService) Unregister(eventID, userID uint) error {
	if _, err := s.EventRepo.FindByID(eventID); err != nil {
		return err
	}
	return s.EventRepo.Unregister(eventID, userID)
}

// ListRegistrations 报名名单，只输出用户摘要
func (s *EventService) ListRegistrations(eventID uint) ([]*model.UserSummary, error) {
	if _, err := s.EventRepo.FindByID(eventID); err != nil {
		return nil, err
	}
	regs, err := s.EventRepo.ListRegistrations(eventID)
	if err != nil {
		return nil, err
	}
	out := make([]*model.UserSummary, 0, len(regs))
	for i := range regs {
		out = append(out, model.NewUserSummary(&regs[i].User))
	}
	return out, nil
}

func (s *EventService) buildView(event *model.Event, viewerID uint) (*model.EventView, error) {
	regs, err := s.EventRepo.ListRegistrations(event.ID)
	if err != nil {
		return nil, err
	}
	view := &model.EventView{
		Event:             *event,
		RegistrationCount: int64(len(regs)),
	}
	if viewerID != 0 {
		for i := range regs {
			if regs[i].UserID == viewerID {
				view.Registered = true
				break
			}
		}
	}
	return view, nil
}
