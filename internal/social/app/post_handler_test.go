package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"study_portal_service/internal/social/domain"
	"study_portal_service/internal/social/repository"
	"study_portal_service/pkg/logger"
	"study_portal_service/pkg/middlewares"
	"study_portal_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPostTestApp(postRepo *MockPostRepository, visitRepo *MockVisitRepository) *fiber.App {
	app := fiber.New()
	h := NewPostHandler(NewPostUseCase(postRepo), NewActivityUseCase(visitRepo))

	posts := app.Group("/api/posts", middlewares.JWTMiddleware())
	posts.Get("/", h.List)
	posts.Post("/", h.Create)
	posts.Post("/visit", h.Visit)
	posts.Get("/activity", h.Activity)
	posts.Get("/users", h.Users)
	posts.Post("/:id/like", h.Like)
	posts.Post("/:id/comment", h.Comment)
	posts.Post("/:id/vote", h.Vote)
	posts.Post("/:id/view", h.View)
	posts.Delete("/:id", h.Delete)
	return app
}

func authedRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	tokenStr, err := token.GenerateJWT("u1", "Alice", string(token.RoleTeacher), "chat_service")
	require.NoError(t, err)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tokenStr)
	return req
}

func TestPostHandler_Create(t *testing.T) {
	logger.SetNewNop()

	t.Run("missing token", func(t *testing.T) {
		app := newPostTestApp(new(MockPostRepository), new(MockVisitRepository))
		req := httptest.NewRequest(http.MethodPost, "/api/posts/", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("author taken from token", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("Insert", mock.Anything, mock.MatchedBy(func(p *domain.Post) bool {
			return p.Author.ID == "u1" && p.Author.Name == "Alice" && p.Author.Role == string(token.RoleTeacher)
		})).Return(nil).Once()
		app := newPostTestApp(postRepo, new(MockVisitRepository))

		req := authedRequest(t, http.MethodPost, "/api/posts/", CreatePostRequest{Content: "hello feed"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var got domain.Post
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "hello feed", got.Content)
		assert.Equal(t, "u1", got.Author.ID)
		postRepo.AssertExpectations(t)
	})
}

func TestPostHandler_Delete(t *testing.T) {
	logger.SetNewNop()

	t.Run("not found", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("FindByID", mock.Anything, "missing").Return(nil, repository.ErrPostNotFound).Once()
		app := newPostTestApp(postRepo, new(MockVisitRepository))

		resp, err := app.Test(authedRequest(t, http.MethodDelete, "/api/posts/missing", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("foreign post forbidden", func(t *testing.T) {
		post := postFixture()
		post.Author.ID = "someone-else"
		postRepo := new(MockPostRepository)
		postRepo.On("FindByID", mock.Anything, "p1").Return(post, nil).Once()
		app := newPostTestApp(postRepo, new(MockVisitRepository))

		resp, err := app.Test(authedRequest(t, http.MethodDelete, "/api/posts/p1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("own post deleted", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		postRepo.On("FindByID", mock.Anything, "p1").Return(postFixture(), nil).Once()
		postRepo.On("Delete", mock.Anything, "p1").Return(nil).Once()
		app := newPostTestApp(postRepo, new(MockVisitRepository))

		resp, err := app.Test(authedRequest(t, http.MethodDelete, "/api/posts/p1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		postRepo.AssertExpectations(t)
	})
}

func TestPostHandler_Vote(t *testing.T) {
	logger.SetNewNop()

	post := postFixture()
	post.Poll = &domain.Poll{
		Question: "best subject?",
		Options:  []domain.PollOption{{ID: "o1", Text: "math", Votes: []string{}}},
	}
	postRepo := new(MockPostRepository)
	postRepo.On("FindByID", mock.Anything, "p1").Return(post, nil).Once()
	postRepo.On("Replace", mock.Anything, post).Return(nil).Once()
	app := newPostTestApp(postRepo, new(MockVisitRepository))

	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/posts/p1/vote", VoteRequest{OptionID: "o1"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var got domain.Post
	require.NoError(t, json.Unmarshal(body, &got))
	require.NotNil(t, got.Poll)
	assert.Equal(t, []string{"u1"}, got.Poll.Options[0].Votes)
}

func TestPostHandler_Activity(t *testing.T) {
	logger.SetNewNop()

	t.Run("visit recorded", func(t *testing.T) {
		visitRepo := new(MockVisitRepository)
		visitRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(v *domain.SocialVisit) bool {
			return v.UserID == "u1" && v.Name == "Alice"
		})).Return(nil).Once()
		app := newPostTestApp(new(MockPostRepository), visitRepo)

		resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/posts/visit", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		visitRepo.AssertExpectations(t)
	})

	t.Run("users directory shape", func(t *testing.T) {
		visitRepo := new(MockVisitRepository)
		visitRepo.On("Known", mock.Anything, int64(knownUsersLimit)).Return([]domain.SocialVisit{
			{UserID: "u2", Name: "Bob", Role: "student"},
		}, nil).Once()
		app := newPostTestApp(new(MockPostRepository), visitRepo)

		resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/posts/users", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var got []map[string]string
		require.NoError(t, json.Unmarshal(body, &got))
		require.Len(t, got, 1)
		assert.Equal(t, "u2", got[0]["_id"])
		assert.Equal(t, "Bob", got[0]["name"])
		assert.Equal(t, "student", got[0]["role"])
	})
}
