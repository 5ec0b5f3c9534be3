package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMessageRepository is a mock of the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Message, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMessageRepository) List(ctx context.Context, limit, offset int, viewerID uint) ([]models.Message, error) {
	args := m.Called(ctx, limit, offset, viewerID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) ListByUser(ctx context.Context, userID uint, limit, offset int, viewerID uint) ([]models.Message, error) {
	args := m.Called(ctx, userID, limit, offset, viewerID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) Feed(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) Like(ctx context.Context, userID, messageID uint) error {
	args := m.Called(ctx, userID, messageID)
	return args.Error(0)
}

func (m *MockMessageRepository) Unlike(ctx context.Context, userID, messageID uint) error {
	args := m.Called(ctx, userID, messageID)
	return args.Error(0)
}

func (m *MockMessageRepository) IsLikedBy(ctx context.Context, userID, messageID uint) (bool, error) {
	args := m.Called(ctx, userID, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageRepository) ListLikedBy(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]models.Message), args.Error(1)
}

// fakeAuth injects a fixed user identity, standing in for AuthRequired.
func fakeAuth(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func TestCreateMessage(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockMessageRepository)
	s := &Server{messageRepo: mockRepo}

	app.Use(fakeAuth(1))
	app.Post("/messages", s.CreateMessage)

	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{"text": "a new warble"},
			mockSetup: func() {
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
				mockRepo.On("GetByID", mock.Anything, mock.Anything, uint(1)).
					Return(&models.Message{ID: 1, Text: "a new warble", UserID: 1}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Empty Text",
			body:           map[string]any{"text": ""},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Text Too Long",
			body:           map[string]any{"text": strings.Repeat("x", models.MaxMessageLen+1)},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			req := httptest.NewRequest(http.MethodPost, "/messages", jsonBody(t, tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestCreateMessage_SpoofedAuthorIgnored(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockMessageRepository)
	s := &Server{messageRepo: mockRepo}

	app.Use(fakeAuth(1))
	app.Post("/messages", s.CreateMessage)

	var created *models.Message
	mockRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.Message)
	}).Return(nil)
	mockRepo.On("GetByID", mock.Anything, mock.Anything, uint(1)).
		Return(&models.Message{ID: 1, Text: "spoofed", UserID: 1}, nil)

	// A user_id in the payload must not override the session identity.
	req := httptest.NewRequest(http.MethodPost, "/messages", jsonBody(t, map[string]any{
		"text":    "spoofed",
		"user_id": 99999,
	}))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, created)
	assert.Equal(t, uint(1), created.UserID)

	var body models.Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, uint(1), body.UserID)
}

func TestGetMessage(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockMessageRepository)
	s := &Server{messageRepo: mockRepo}

	app.Get("/messages/:id", s.GetMessage)

	t.Run("Success", func(t *testing.T) {
		mockRepo.On("GetByID", mock.Anything, uint(1), uint(0)).
			Return(&models.Message{ID: 1, Text: "hello", UserID: 2}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/messages/1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo.On("GetByID", mock.Anything, uint(99), uint(0)).
			Return(nil, models.NewNotFoundError("Message", 99)).Once()

		req := httptest.NewRequest(http.MethodGet, "/messages/99", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/messages/abc", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteMessage(t *testing.T) {
	newApp := func(mockRepo *MockMessageRepository, userID uint) *fiber.App {
		app := fiber.New()
		s := &Server{messageRepo: mockRepo}
		app.Use(fakeAuth(userID))
		app.Delete("/messages/:id", s.DeleteMessage)
		return app
	}

	t.Run("author can delete", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		mockRepo.On("GetByID", mock.Anything, uint(1), uint(0)).
			Return(&models.Message{ID: 1, UserID: 1}, nil)
		mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)

		app := newApp(mockRepo, 1)
		req := httptest.NewRequest(http.MethodDelete, "/messages/1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockRepo.AssertCalled(t, "Delete", mock.Anything, uint(1))
	})

	t.Run("non-author is refused with the standard notice", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		mockRepo.On("GetByID", mock.Anything, uint(1), uint(0)).
			Return(&models.Message{ID: 1, UserID: 1}, nil)

		app := newApp(mockRepo, 2)
		req := httptest.NewRequest(http.MethodDelete, "/messages/1", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var body models.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Access unauthorized.", body.Error)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing message is a 404, not a refusal", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		mockRepo.On("GetByID", mock.Anything, uint(99), uint(0)).
			Return(nil, models.NewNotFoundError("Message", 99))

		app := newApp(mockRepo, 1)
		req := httptest.NewRequest(http.MethodDelete, "/messages/99", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestToggleLike(t *testing.T) {
	newApp := func(mockRepo *MockMessageRepository, userID uint) *fiber.App {
		app := fiber.New()
		s := &Server{messageRepo: mockRepo}
		app.Use(fakeAuth(userID))
		app.Post("/messages/:id/like", s.ToggleLike)
		return app
	}

	t.Run("likes when not yet liked", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		mockRepo.On("GetByID", mock.Anything, uint(5), uint(0)).
			Return(&models.Message{ID: 5, UserID: 2}, nil)
		mockRepo.On("IsLikedBy", mock.Anything, uint(1), uint(5)).Return(false, nil)
		mockRepo.On("Like", mock.Anything, uint(1), uint(5)).Return(nil)

		app := newApp(mockRepo, 1)
		req := httptest.NewRequest(http.MethodPost, "/messages/5/like", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Liked bool `json:"liked"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Liked)
	})

	t.Run("unlikes when already liked", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		mockRepo.On("GetByID", mock.Anything, uint(5), uint(0)).
			Return(&models.Message{ID: 5, UserID: 2}, nil)
		mockRepo.On("IsLikedBy", mock.Anything, uint(1), uint(5)).Return(true, nil)
		mockRepo.On("Unlike", mock.Anything, uint(1), uint(5)).Return(nil)

		app := newApp(mockRepo, 1)
		req := httptest.NewRequest(http.MethodPost, "/messages/5/like", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Liked bool `json:"liked"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Liked)
	})

	t.Run("own warble cannot be liked", func(t *testing.T) {
		mockRepo := new(MockMessageRepository)
		mockRepo.On("GetByID", mock.Anything, uint(5), uint(0)).
			Return(&models.Message{ID: 5, UserID: 1}, nil)

		app := newApp(mockRepo, 1)
		req := httptest.NewRequest(http.MethodPost, "/messages/5/like", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetFeed(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockMessageRepository)
	s := &Server{messageRepo: mockRepo}

	app.Use(fakeAuth(1))
	app.Get("/messages/feed", s.GetFeed)

	mockRepo.On("Feed", mock.Anything, uint(1), 20, 0).
		Return([]models.Message{{ID: 2, Text: "newer"}, {ID: 1, Text: "older"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/messages/feed", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []models.Message
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, "newer", body[0].Text)
}
