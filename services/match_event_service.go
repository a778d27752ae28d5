package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Dosada05/matchday/live"
	"github.com/Dosada05/matchday/models"
	"github.com/Dosada05/matchday/repositories"
	"github.com/Dosada05/matchday/results"
	"github.com/Dosada05/matchday/storage"
)

const (
	maxEventMinute = 150
	maxEventPeriod = 5
)

type MatchEventService interface {
	ListEvents(ctx context.Context, matchID int) ([]*models.MatchEvent, error)
	AddEvent(ctx context.Context, actor Actor, matchID int, input MatchEventInput) (*EventChange, error)
	UpdateEvent(ctx context.Context, actor Actor, matchID, eventID int, input MatchEventUpdate) (*EventChange, error)
	DeleteEvent(ctx context.Context, actor Actor, matchID, eventID int) (*EventChange, error)
	UploadEventVideo(ctx context.Context, actor Actor, matchID, eventID int, file io.Reader, contentType string) (*models.MatchEvent, error)
}

type MatchEventInput struct {
	EventType         models.MatchEventType `json:"event_type"`
	TeamID            int                   `json:"team_id"`
	PlayerID          *int                  `json:"player_id,omitempty"`
	SecondaryPlayerID *int                  `json:"secondary_player_id,omitempty"`
	Minute            int                   `json:"minute"`
	StoppageMinute    *int                  `json:"stoppage_minute,omitempty"`
	Period            int                   `json:"period"`
	Description       *string               `json:"description,omitempty"`
	CoordX            *float64              `json:"coord_x,omitempty"`
	CoordY            *float64              `json:"coord_y,omitempty"`
}

// MatchEventUpdate - частичное изменение события, nil-поля не трогаются.
type MatchEventUpdate struct {
	EventType         *models.MatchEventType `json:"event_type,omitempty"`
	TeamID            *int                   `json:"team_id,omitempty"`
	PlayerID          *int                   `json:"player_id,omitempty"`
	SecondaryPlayerID *int                   `json:"secondary_player_id,omitempty"`
	Minute            *int                   `json:"minute,omitempty"`
	StoppageMinute    *int                   `json:"stoppage_minute,omitempty"`
	Period            *int                   `json:"period,omitempty"`
	Description       *string                `json:"description,omitempty"`
	CoordX            *float64               `json:"coord_x,omitempty"`
	CoordY            *float64               `json:"coord_y,omitempty"`
}

// EventChange - событие после изменения и матч с пересчитанным счётом.
type EventChange struct {
	Event        *models.MatchEvent `json:"event"`
	Match        *models.Match      `json:"match"`
	ScoreChanged bool               `json:"score_changed"`
}

type MatchEventServiceDeps struct {
	Tx             repositories.Transactor
	EventRepo      repositories.MatchEventRepository
	MatchRepo      repositories.MatchRepository
	PlayerRepo     repositories.PlayerRepository
	TeamRepo       repositories.TeamRepository
	TournamentRepo repositories.TournamentRepository
	Uploader       storage.FileUploader
	Notifier       NotificationSender
	Hub            live.Broadcaster
	Logger         *slog.Logger
}

type matchEventService struct {
	tx             repositories.Transactor
	eventRepo      repositories.MatchEventRepository
	matchRepo      repositories.MatchRepository
	playerRepo     repositories.PlayerRepository
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	uploader       storage.FileUploader
	notifier       NotificationSender
	hub            live.Broadcaster
	logger         *slog.Logger
}

func NewMatchEventService(deps MatchEventServiceDeps) MatchEventService {
	return &matchEventService{
		tx:             deps.Tx,
		eventRepo:      deps.EventRepo,
		matchRepo:      deps.MatchRepo,
		playerRepo:     deps.PlayerRepo,
		teamRepo:       deps.TeamRepo,
		tournamentRepo: deps.TournamentRepo,
		uploader:       deps.Uploader,
		notifier:       deps.Notifier,
		hub:            deps.Hub,
		logger:         deps.Logger,
	}
}

func (s *matchEventService) ListEvents(ctx context.Context, matchID int) ([]*models.MatchEvent, error) {
	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return nil, mapMatchError(err)
	}
	events, err := s.eventRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events of match %d: %w", matchID, err)
	}
	for _, e := range events {
		populateEventVideoURLFunc(e, s.uploader)
	}
	return events, nil
}

func (s *matchEventService) AddEvent(ctx context.Context, actor Actor, matchID int, input MatchEventInput) (*EventChange, error) {
	if input.Period == 0 {
		input.Period = 1
	}
	event := &models.MatchEvent{
		MatchID:           matchID,
		EventType:         input.EventType,
		TeamID:            input.TeamID,
		PlayerID:          input.PlayerID,
		SecondaryPlayerID: input.SecondaryPlayerID,
		Minute:            input.Minute,
		StoppageMinute:    input.StoppageMinute,
		Period:            input.Period,
		Description:       input.Description,
		CoordX:            input.CoordX,
		CoordY:            input.CoordY,
		CreatedBy:         actor.UserID,
	}
	if err := validateEventFields(event); err != nil {
		return nil, err
	}

	change := &EventChange{Event: event}
	var mc *matchContext
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		m, ctxData, err := s.lockMatch(ctx, exec, actor, matchID)
		if err != nil {
			return err
		}
		mc, change.Match = ctxData, m
		if err := results.CanAddEvent(m); err != nil {
			return domainError(err)
		}
		if err := s.validateEventRefs(ctx, exec, m, event); err != nil {
			return err
		}
		if err := s.eventRepo.Create(ctx, exec, event); err != nil {
			return err
		}
		credited := results.CreditedTeam(m, event.EventType, event.TeamID)
		if change.ScoreChanged = results.AdjustScore(m, 0, credited); change.ScoreChanged {
			return s.matchRepo.Update(ctx, exec, m)
		}
		return nil
	})
	if err != nil {
		return nil, mapMatchError(err)
	}

	s.logger.InfoContext(ctx, "match event added",
		slog.Int("match_id", matchID), slog.Int("event_id", event.ID), slog.String("type", string(event.EventType)))
	s.afterChange(ctx, mc, change)
	return change, nil
}

func (s *matchEventService) UpdateEvent(ctx context.Context, actor Actor, matchID, eventID int, input MatchEventUpdate) (*EventChange, error) {
	change := &EventChange{}
	var mc *matchContext
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		m, ctxData, err := s.lockMatch(ctx, exec, actor, matchID)
		if err != nil {
			return err
		}
		mc, change.Match = ctxData, m
		if err := results.CanEditEvent(m); err != nil {
			return domainError(err)
		}
		event, err := s.matchEvent(ctx, exec, matchID, eventID)
		if err != nil {
			return err
		}
		before := results.CreditedTeam(m, event.EventType, event.TeamID)

		applyEventUpdate(event, input)
		if err := validateEventFields(event); err != nil {
			return err
		}
		if err := s.validateEventRefs(ctx, exec, m, event); err != nil {
			return err
		}
		if err := s.eventRepo.Update(ctx, exec, event); err != nil {
			return err
		}
		change.Event = event

		after := results.CreditedTeam(m, event.EventType, event.TeamID)
		if change.ScoreChanged = results.AdjustScore(m, before, after); change.ScoreChanged {
			return s.matchRepo.Update(ctx, exec, m)
		}
		return nil
	})
	if err != nil {
		return nil, mapMatchError(err)
	}

	s.logger.InfoContext(ctx, "match event updated",
		slog.Int("match_id", matchID), slog.Int("event_id", eventID), slog.Bool("score_changed", change.ScoreChanged))
	s.afterChange(ctx, mc, change)
	return change, nil
}

func (s *matchEventService) DeleteEvent(ctx context.Context, actor Actor, matchID, eventID int) (*EventChange, error) {
	change := &EventChange{}
	var mc *matchContext
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		m, ctxData, err := s.lockMatch(ctx, exec, actor, matchID)
		if err != nil {
			return err
		}
		mc, change.Match = ctxData, m
		if err := results.CanEditEvent(m); err != nil {
			return domainError(err)
		}
		event, err := s.matchEvent(ctx, exec, matchID, eventID)
		if err != nil {
			return err
		}
		if err := s.eventRepo.SoftDelete(ctx, exec, eventID); err != nil {
			return err
		}
		change.Event = event

		before := results.CreditedTeam(m, event.EventType, event.TeamID)
		if change.ScoreChanged = results.AdjustScore(m, before, 0); change.ScoreChanged {
			return s.matchRepo.Update(ctx, exec, m)
		}
		return nil
	})
	if err != nil {
		return nil, mapMatchError(err)
	}

	s.logger.InfoContext(ctx, "match event deleted",
		slog.Int("match_id", matchID), slog.Int("event_id", eventID), slog.Bool("score_changed", change.ScoreChanged))
	s.afterChange(ctx, mc, change)
	return change, nil
}

func (s *matchEventService) UploadEventVideo(ctx context.Context, actor Actor, matchID, eventID int, file io.Reader, contentType string) (*models.MatchEvent, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}
	ext, err := storage.VideoExtension(contentType)
	if err != nil {
		return nil, classify(ErrInvalidArgument, err)
	}

	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapMatchError(err)
	}
	mc, err := loadMatchContext(ctx, s.teamRepo, s.tournamentRepo, m)
	if err != nil {
		return nil, err
	}
	if !actor.Officiates(m, mc.tournament) {
		return nil, ErrOfficialRequired
	}
	event, err := s.matchEvent(ctx, nil, matchID, eventID)
	if err != nil {
		return nil, mapMatchError(err)
	}

	key := fmt.Sprintf("events/%d/video_%d%s", eventID, time.Now().UnixNano(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload video of event %d: %w", eventID, err)
	}
	oldKey := event.VideoKey
	if err := s.eventRepo.UpdateVideoKey(ctx, eventID, &key); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to clean up uploaded video", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, mapMatchError(err)
	}
	if oldKey != nil && *oldKey != "" {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous event video", slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	event.VideoKey = &key
	populateEventVideoURLFunc(event, s.uploader)
	return event, nil
}

// lockMatch блокирует матч и проверяет, что actor судит его или организует турнир.
func (s *matchEventService) lockMatch(ctx context.Context, exec repositories.SQLExecutor, actor Actor, matchID int) (*models.Match, *matchContext, error) {
	m, err := s.matchRepo.GetByIDForUpdate(ctx, exec, matchID)
	if err != nil {
		return nil, nil, err
	}
	mc, err := loadMatchContext(ctx, s.teamRepo, s.tournamentRepo, m)
	if err != nil {
		return nil, nil, err
	}
	if !actor.Officiates(m, mc.tournament) {
		return nil, nil, ErrOfficialRequired
	}
	return m, mc, nil
}

// matchEvent загружает событие и проверяет, что оно относится к матчу.
func (s *matchEventService) matchEvent(ctx context.Context, exec repositories.SQLExecutor, matchID, eventID int) (*models.MatchEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, exec, eventID)
	if err != nil {
		return nil, err
	}
	if event.MatchID != matchID {
		return nil, ErrMatchEventNotFound
	}
	return event, nil
}

func (s *matchEventService) validateEventRefs(ctx context.Context, exec repositories.SQLExecutor, m *models.Match, event *models.MatchEvent) error {
	if !m.HasTeam(event.TeamID) {
		return domainError(results.ErrEventTeamNotInMatch)
	}
	if event.EventType.IsSubstitution() && (event.PlayerID == nil || event.SecondaryPlayerID == nil) {
		return domainError(results.ErrSubstitutionTeam)
	}

	var ids []int
	if event.PlayerID != nil {
		ids = append(ids, *event.PlayerID)
	}
	if event.SecondaryPlayerID != nil {
		ids = append(ids, *event.SecondaryPlayerID)
	}
	if len(ids) == 0 {
		return nil
	}
	players, err := s.playerRepo.GetByIDs(ctx, exec, uniqueIDs(ids...))
	if err != nil {
		return fmt.Errorf("failed to load event players: %w", err)
	}
	for _, id := range ids {
		p, ok := players[id]
		if !ok {
			return fmt.Errorf("%w: %d", ErrInvalidPlayer, id)
		}
		if event.EventType.IsSubstitution() && p.TeamID != event.TeamID {
			return domainError(results.ErrSubstitutionTeam)
		}
	}
	return nil
}

// afterChange рассылает новое состояние матча после коммита.
func (s *matchEventService) afterChange(ctx context.Context, mc *matchContext, change *EventChange) {
	populateEventVideoURLFunc(change.Event, s.uploader)
	if s.hub != nil {
		room := live.MatchRoom(change.Match.ID)
		s.hub.BroadcastToRoom(room, live.WebSocketMessage{Type: live.MessageEventChanged, Payload: change.Event})
		s.hub.BroadcastToRoom(room, live.WebSocketMessage{Type: live.MessageMatchUpdated, Payload: change.Match})
	}
	if change.ScoreChanged {
		s.notifier.Send(ctx, mc.scoreUpdatedNotifications(change.Match, false)...)
	}
	mc.attach(change.Match)
}

func applyEventUpdate(event *models.MatchEvent, input MatchEventUpdate) {
	if input.EventType != nil {
		event.EventType = *input.EventType
	}
	if input.TeamID != nil {
		event.TeamID = *input.TeamID
	}
	if input.PlayerID != nil {
		event.PlayerID = input.PlayerID
	}
	if input.SecondaryPlayerID != nil {
		event.SecondaryPlayerID = input.SecondaryPlayerID
	}
	if input.Minute != nil {
		event.Minute = *input.Minute
	}
	if input.StoppageMinute != nil {
		event.StoppageMinute = input.StoppageMinute
	}
	if input.Period != nil {
		event.Period = *input.Period
	}
	if input.Description != nil {
		event.Description = input.Description
	}
	if input.CoordX != nil {
		event.CoordX = input.CoordX
	}
	if input.CoordY != nil {
		event.CoordY = input.CoordY
	}
}

func validateEventFields(event *models.MatchEvent) error {
	switch {
	case !event.EventType.Valid():
		return fmt.Errorf("%w: '%s'", ErrInvalidEventType, event.EventType)
	case event.TeamID <= 0:
		return newError(ErrInvalidArgument, "team_id is required")
	case event.Minute < 0 || event.Minute > maxEventMinute:
		return ErrInvalidMinute
	case event.StoppageMinute != nil && *event.StoppageMinute < 0:
		return newError(ErrInvalidArgument, "stoppage_minute cannot be negative")
	case event.Period < 1 || event.Period > maxEventPeriod:
		return newError(ErrInvalidArgument, fmt.Sprintf("period must be between 1 and %d", maxEventPeriod))
	}
	return nil
}
