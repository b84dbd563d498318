package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vijayaelectrics/repair-shop-api/internal/models"
	"github.com/vijayaelectrics/repair-shop-api/pkg/dispatch"
	appErrors "github.com/vijayaelectrics/repair-shop-api/pkg/errors"
)

type notificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	List(ctx context.Context, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

const notificationTaskType = "notification"

// NotificationService persists admin notifications. Customer-facing mutations
// publish through an in-memory queue so the request path never blocks on the
// notification write.
type NotificationService struct {
	repo   notificationRepository
	queue  *dispatch.Queue
	logger *zap.Logger
}

// NewNotificationService constructs a NotificationService with its dispatch
// queue. Call Start before publishing and Stop on shutdown.
func NewNotificationService(repo notificationRepository, cfg dispatch.QueueConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{repo: repo, logger: logger}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	s.queue = dispatch.NewQueue("notifications", s.handleTask, cfg)
	return s
}

// Start launches the dispatch workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the dispatch workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// PublishJobUpdate records that a customer updated their job details.
func (s *NotificationService) PublishJobUpdate(job *models.Job) {
	s.publish(models.Notification{
		Type:         models.NotificationTypeUpdate,
		Message:      fmt.Sprintf("Customer %s updated their job details.", job.CustomerName),
		CustomerName: job.CustomerName,
		JobNumber:    job.JobNumber,
	})
}

// PublishJobDelete records that a customer deleted their repair job.
func (s *NotificationService) PublishJobDelete(job *models.Job) {
	s.publish(models.Notification{
		Type:         models.NotificationTypeDelete,
		Message:      fmt.Sprintf("Customer %s deleted their repair job.", job.CustomerName),
		CustomerName: job.CustomerName,
		JobNumber:    job.JobNumber,
	})
}

// List returns notifications, optionally restricted to unread ones.
func (s *NotificationService) List(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	notifications, err := s.repo.List(ctx, unreadOnly)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	return notifications, nil
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	affected, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notification read")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	return nil
}

// Delete removes a notification once an admin has dealt with it.
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete notification")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
	}
	return nil
}

func (s *NotificationService) publish(notification models.Notification) {
	task := dispatch.Task{Type: notificationTaskType, Payload: notification}
	if err := s.queue.Enqueue(task); err != nil {
		// Fire-and-forget: the request already succeeded, so only log.
		s.logger.Warn("notification enqueue failed",
			zap.Int("job_number", notification.JobNumber),
			zap.Error(err),
		)
	}
}

func (s *NotificationService) handleTask(ctx context.Context, task dispatch.Task) error {
	notification, ok := task.Payload.(models.Notification)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", task.Payload)
	}
	return s.repo.Create(ctx, &notification)
}
