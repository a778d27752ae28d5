package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/matchday/live"
	"github.com/Dosada05/matchday/messaging"
	"github.com/Dosada05/matchday/models"
	"github.com/Dosada05/matchday/repositories"
)

// Notifier доставляет одно уведомление по всем настроенным каналам.
type Notifier interface {
	Dispatch(ctx context.Context, n *models.Notification) error
}

// NotificationSender ставит уведомления в фоновую доставку и никогда не
// возвращает ошибок вызывающему.
type NotificationSender interface {
	Send(ctx context.Context, notifications ...*models.Notification)
}

type NotificationService interface {
	ListNotifications(ctx context.Context, actor Actor, unreadOnly bool, page models.Page) ([]*models.Notification, models.Pagination, error)
	MarkRead(ctx context.Context, actor Actor, id int) error
	MarkAllRead(ctx context.Context, actor Actor) (int, error)
}

type NotificationDispatcher struct {
	repo      repositories.NotificationRepository
	userRepo  repositories.UserRepository
	mailer    Mailer              // nil - email отключен
	publisher messaging.Publisher // nil - AMQP отключен
	hub       live.Broadcaster
	publicURL string
	logger    *slog.Logger
}

type NotificationDispatcherDeps struct {
	Repo      repositories.NotificationRepository
	UserRepo  repositories.UserRepository
	Mailer    Mailer
	Publisher messaging.Publisher
	Hub       live.Broadcaster
	PublicURL string
	Logger    *slog.Logger
}

func NewNotificationDispatcher(deps NotificationDispatcherDeps) *NotificationDispatcher {
	return &NotificationDispatcher{
		repo:      deps.Repo,
		userRepo:  deps.UserRepo,
		mailer:    deps.Mailer,
		publisher: deps.Publisher,
		hub:       deps.Hub,
		publicURL: strings.TrimSuffix(deps.PublicURL, "/"),
		logger:    deps.Logger,
	}
}

// Dispatch сохраняет уведомление и доставляет его. Ошибка сохранения
// прерывает доставку; ошибки остальных каналов объединяются.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, n *models.Notification) error {
	if n.Priority == "" {
		n.Priority = models.PriorityNormal
	}
	if err := d.repo.Create(ctx, n); err != nil {
		return err
	}

	var errs []error
	if n.SendEmail && d.mailer != nil {
		if err := d.sendEmail(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("email: %w", err))
		}
	}
	if d.publisher != nil {
		body, err := json.Marshal(n)
		if err == nil {
			err = d.publisher.Publish(ctx, "notification."+string(n.Type), body)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	if d.hub != nil {
		d.hub.BroadcastToRoom(live.UserRoom(n.UserID), live.WebSocketMessage{
			Type:    live.MessageNotification,
			Payload: n,
		})
	}
	return errors.Join(errs...)
}

func (d *NotificationDispatcher) sendEmail(ctx context.Context, n *models.Notification) error {
	user, err := d.userRepo.GetByID(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("recipient %d: %w", n.UserID, err)
	}
	body, err := GenerateEmailBody(n.Title, n.Message, d.matchLink(n))
	if err != nil {
		return err
	}
	if err := d.mailer.SendEmail([]string{user.Email}, n.Title, body); err != nil {
		return err
	}
	n.EmailSent = true
	return d.repo.MarkEmailSent(ctx, n.ID)
}

func (d *NotificationDispatcher) matchLink(n *models.Notification) string {
	if d.publicURL == "" || len(n.Metadata) == 0 {
		return ""
	}
	var meta struct {
		MatchID int `json:"match_id"`
	}
	if err := json.Unmarshal(n.Metadata, &meta); err != nil || meta.MatchID == 0 {
		return ""
	}
	return fmt.Sprintf("%s/matches/%d", d.publicURL, meta.MatchID)
}

// AsyncNotifier доставляет уведомления в фоне после завершения основной операции.
type AsyncNotifier struct {
	notifier Notifier
	timeout  time.Duration
	logger   *slog.Logger
	wg       sync.WaitGroup
}

func NewAsyncNotifier(notifier Notifier, timeout time.Duration, logger *slog.Logger) *AsyncNotifier {
	return &AsyncNotifier{notifier: notifier, timeout: timeout, logger: logger}
}

// Send не блокирует вызывающего; отмена ctx запроса не прерывает доставку.
func (a *AsyncNotifier) Send(ctx context.Context, notifications ...*models.Notification) {
	if len(notifications) == 0 {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()
		for _, n := range notifications {
			if err := a.notifier.Dispatch(dctx, n); err != nil {
				a.logger.WarnContext(dctx, "notification dispatch failed",
					slog.Int("user_id", n.UserID),
					slog.String("type", string(n.Type)),
					slog.Any("error", err))
			}
		}
	}()
}

// Wait ждёт завершения всех начатых доставок.
func (a *AsyncNotifier) Wait() {
	a.wg.Wait()
}

type notificationService struct {
	repo repositories.NotificationRepository
}

func NewNotificationService(repo repositories.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) ListNotifications(ctx context.Context, actor Actor, unreadOnly bool, page models.Page) ([]*models.Notification, models.Pagination, error) {
	page = page.Normalize()
	list, total, err := s.repo.ListByUser(ctx, actor.UserID, unreadOnly, page)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list notifications: %w", err)
	}
	return list, models.Pagination{Page: page.Page, Limit: page.Limit, Total: total}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor Actor, id int) error {
	if err := s.repo.MarkRead(ctx, actor.UserID, id); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor Actor) (int, error) {
	n, err := s.repo.MarkAllRead(ctx, actor.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return n, nil
}
