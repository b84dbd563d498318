package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/vijayaelectrics/repair-shop-api/internal/models"
	"github.com/vijayaelectrics/repair-shop-api/internal/service"
	"github.com/vijayaelectrics/repair-shop-api/pkg/dispatch"
)

type notificationRepoMock struct {
	listed         []models.Notification
	affected       int64
	deleteAffected int64
}

func (m *notificationRepoMock) Create(ctx context.Context, notification *models.Notification) error {
	return nil
}

func (m *notificationRepoMock) List(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	return m.listed, nil
}

func (m *notificationRepoMock) MarkRead(ctx context.Context, id string) (int64, error) {
	return m.affected, nil
}

func (m *notificationRepoMock) Delete(ctx context.Context, id string) (int64, error) {
	return m.deleteAffected, nil
}

func newNotificationHandler(repo *notificationRepoMock) *NotificationHandler {
	svc := service.NewNotificationService(repo, dispatch.QueueConfig{}, zap.NewNop())
	return NewNotificationHandler(svc)
}

func TestNotificationHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newNotificationHandler(&notificationRepoMock{deleteAffected: 1})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/notifications/note-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "note-1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestNotificationHandlerDeleteMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newNotificationHandler(&notificationRepoMock{deleteAffected: 0})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/notifications/note-99", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "note-99"}}

	handler.Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationHandlerMarkReadMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newNotificationHandler(&notificationRepoMock{affected: 0})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/notifications/note-99/read", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "note-99"}}

	handler.MarkRead(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
