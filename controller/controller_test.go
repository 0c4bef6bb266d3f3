package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"kishi-backend/models"
	"kishi-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockContactService implements services.ContactServiceInterface for testing
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) SubmitContact(ctx context.Context, req *models.ContactRequest, meta models.RequestMeta) (*models.ContactSubmission, error) {
	args := m.Called(ctx, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContactSubmission), args.Error(1)
}

func (m *MockContactService) ListSubmissions(ctx context.Context, status string, limit int) ([]*models.ContactSubmission, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContactSubmission), args.Error(1)
}

func (m *MockContactService) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockNewsletterService implements services.NewsletterServiceInterface for testing
type MockNewsletterService struct {
	mock.Mock
}

func (m *MockNewsletterService) Subscribe(ctx context.Context, req *models.NewsletterRequest, meta models.RequestMeta) (*models.NewsletterSubscriber, error) {
	args := m.Called(ctx, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NewsletterSubscriber), args.Error(1)
}

func (m *MockNewsletterService) ListSubscribers(ctx context.Context, status string, limit int) ([]*models.NewsletterSubscriber, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.NewsletterSubscriber), args.Error(1)
}

func (m *MockNewsletterService) Unsubscribe(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func testConfig() *models.Config {
	return &models.Config{
		AppEnv:        "development",
		StoreTimeout:  time.Second,
		NotifyTimeout: time.Second,
		BasePath:      "/api",
	}
}

func newContactRouter(svc *MockContactService) *gin.Engine {
	h := NewContactController(svc, testConfig(), logger.NewNop())
	r := gin.New()
	r.POST("/api/contact", h.Submit)
	r.GET("/api/contact", h.List)
	r.PATCH("/api/contact/:id", h.UpdateStatus)
	return r
}

func newNewsletterRouter(svc *MockNewsletterService) *gin.Engine {
	h := NewNewsletterController(svc, testConfig(), logger.NewNop())
	r := gin.New()
	r.POST("/api/newsletter", h.Subscribe)
	r.GET("/api/newsletter", h.List)
	r.DELETE("/api/newsletter/:id", h.Unsubscribe)
	return r
}

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
