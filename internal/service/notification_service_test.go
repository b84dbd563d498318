package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vijayaelectrics/repair-shop-api/internal/models"
	"github.com/vijayaelectrics/repair-shop-api/pkg/dispatch"
	appErrors "github.com/vijayaelectrics/repair-shop-api/pkg/errors"
)

type notificationRepoStub struct {
	mu       sync.Mutex
	created  []*models.Notification
	done     chan struct{}
	listed         []models.Notification
	listErr        error
	affected       int64
	markErr        error
	deleteAffected int64
	deleteErr      error
	deletedIDs     []string
}

func (s *notificationRepoStub) Create(ctx context.Context, notification *models.Notification) error {
	s.mu.Lock()
	s.created = append(s.created, notification)
	s.mu.Unlock()
	if s.done != nil {
		s.done <- struct{}{}
	}
	return nil
}

func (s *notificationRepoStub) List(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	return s.listed, s.listErr
}

func (s *notificationRepoStub) MarkRead(ctx context.Context, id string) (int64, error) {
	return s.affected, s.markErr
}

func (s *notificationRepoStub) Delete(ctx context.Context, id string) (int64, error) {
	s.deletedIDs = append(s.deletedIDs, id)
	return s.deleteAffected, s.deleteErr
}

func TestNotificationServicePublishPersists(t *testing.T) {
	repo := &notificationRepoStub{done: make(chan struct{}, 2)}
	svc := NewNotificationService(repo, dispatch.QueueConfig{Workers: 1, BufferSize: 4}, zap.NewNop())
	svc.Start(context.Background())
	defer svc.Stop()

	job := &models.Job{JobNumber: 1001, CustomerName: "Nimal Perera"}
	svc.PublishJobUpdate(job)
	svc.PublishJobDelete(job)

	for i := 0; i < 2; i++ {
		select {
		case <-repo.done:
		case <-time.After(2 * time.Second):
			t.Fatal("notification was not persisted in time")
		}
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Len(t, repo.created, 2)
	assert.Equal(t, models.NotificationTypeUpdate, repo.created[0].Type)
	assert.Contains(t, repo.created[0].Message, "Nimal Perera")
	assert.Equal(t, models.NotificationTypeDelete, repo.created[1].Type)
	assert.Equal(t, 1001, repo.created[1].JobNumber)
}

func TestNotificationServicePublishBeforeStart(t *testing.T) {
	repo := &notificationRepoStub{}
	svc := NewNotificationService(repo, dispatch.QueueConfig{}, zap.NewNop())

	// Enqueue failures are swallowed: the customer request already succeeded.
	svc.PublishJobUpdate(&models.Job{JobNumber: 1001, CustomerName: "Nimal Perera"})
	assert.Empty(t, repo.created)
}

func TestNotificationServiceMarkReadMissing(t *testing.T) {
	repo := &notificationRepoStub{affected: 0}
	svc := NewNotificationService(repo, dispatch.QueueConfig{}, zap.NewNop())

	err := svc.MarkRead(context.Background(), "note-99")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestNotificationServiceDelete(t *testing.T) {
	repo := &notificationRepoStub{deleteAffected: 1}
	svc := NewNotificationService(repo, dispatch.QueueConfig{}, zap.NewNop())

	err := svc.Delete(context.Background(), "note-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"note-1"}, repo.deletedIDs)
}

func TestNotificationServiceDeleteMissing(t *testing.T) {
	repo := &notificationRepoStub{deleteAffected: 0}
	svc := NewNotificationService(repo, dispatch.QueueConfig{}, zap.NewNop())

	err := svc.Delete(context.Background(), "note-99")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestNotificationServiceList(t *testing.T) {
	repo := &notificationRepoStub{listed: []models.Notification{{ID: "note-1", Type: models.NotificationTypeUpdate}}}
	svc := NewNotificationService(repo, dispatch.QueueConfig{}, zap.NewNop())

	notifications, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "note-1", notifications[0].ID)
}
