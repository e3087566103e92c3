package app

import (
	"errors"

	"study_portal_service/internal/social/domain"
	"study_portal_service/internal/social/repository"
	"study_portal_service/pkg/logger"
	"study_portal_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PostHandler HTTP surface of the social feed
type PostHandler struct {
	postUC     *PostUseCase
	activityUC *ActivityUseCase
}

// NewPostHandler create PostHandler
func NewPostHandler(postUC *PostUseCase, activityUC *ActivityUseCase) *PostHandler {
	return &PostHandler{
		postUC:     postUC,
		activityUC: activityUC,
	}
}

// CreatePostRequest POST /api/posts body. Media fields are URLs minted by
// the external upload service.
type CreatePostRequest struct {
	Content string       `json:"content"`
	Images  []string     `json:"images"`
	Videos  []string     `json:"videos"`
	Tags    []string     `json:"tags"`
	Poll    *domain.Poll `json:"poll"`
}

// CommentRequest POST /api/posts/:id/comment body
type CommentRequest struct {
	Text string `json:"text"`
}

// VoteRequest POST /api/posts/:id/vote body
type VoteRequest struct {
	OptionID string `json:"optionId"`
}

// List godoc
// @Summary Newest social feed posts
// @Tags social
// @Produce json
// @Success 200 {array} domain.Post
// @Router /api/posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	posts, err := h.postUC.ListPosts(c.Context())
	if err != nil {
		return serverError(c, "list posts failed", err)
	}
	return c.JSON(posts)
}

// Create godoc
// @Summary Publish a post
// @Tags social
// @Accept json
// @Produce json
// @Success 201 {object} domain.Post
// @Router /api/posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	author := domain.PostAuthor{
		ID:   localString(c, middlewares.TokenUserID),
		Name: localString(c, middlewares.TokenUserName),
		Role: localString(c, middlewares.TokenRole),
	}

	post, err := h.postUC.CreatePost(c.Context(), author, req.Content, req.Images, req.Videos, req.Tags, req.Poll)
	if err != nil {
		return serverError(c, "create post failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// Like toggle the caller's like on a post
func (h *PostHandler) Like(c *fiber.Ctx) error {
	post, err := h.postUC.ToggleLike(c.Context(), c.Params("id"), localString(c, middlewares.TokenUserID))
	if err != nil {
		return postError(c, err)
	}
	return c.JSON(post)
}

// Comment append a comment to a post
func (h *PostHandler) Comment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	user := domain.CommentUser{
		ID:   localString(c, middlewares.TokenUserID),
		Name: localString(c, middlewares.TokenUserName),
	}
	post, err := h.postUC.AddComment(c.Context(), c.Params("id"), user, req.Text)
	if err != nil {
		return postError(c, err)
	}
	return c.JSON(post)
}

// Vote move the caller's poll vote
func (h *PostHandler) Vote(c *fiber.Ctx) error {
	var req VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}

	post, err := h.postUC.Vote(c.Context(), c.Params("id"), localString(c, middlewares.TokenUserID), req.OptionID)
	if err != nil {
		return postError(c, err)
	}
	return c.JSON(post)
}

// View record that the caller has seen the post
func (h *PostHandler) View(c *fiber.Ctx) error {
	post, err := h.postUC.RegisterView(c.Context(), c.Params("id"), localString(c, middlewares.TokenUserID))
	if err != nil {
		return postError(c, err)
	}
	return c.JSON(post)
}

// Delete remove the caller's own post
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	err := h.postUC.DeletePost(c.Context(), c.Params("id"), localString(c, middlewares.TokenUserID))
	if err != nil {
		return postError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Deleted"})
}

// Visit record a feed visit for the activity widgets
func (h *PostHandler) Visit(c *fiber.Ctx) error {
	err := h.activityUC.RecordVisit(
		c.Context(),
		localString(c, middlewares.TokenUserID),
		localString(c, middlewares.TokenUserName),
		localString(c, middlewares.TokenRole),
		"",
	)
	if err != nil {
		return serverError(c, "record visit failed", err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Activity users active within the last hour
func (h *PostHandler) Activity(c *fiber.Ctx) error {
	visits, err := h.activityUC.ActiveUsers(c.Context())
	if err != nil {
		return serverError(c, "activity query failed", err)
	}
	return c.JSON(visits)
}

// Users recently seen user directory
func (h *PostHandler) Users(c *fiber.Ctx) error {
	visits, err := h.activityUC.KnownUsers(c.Context())
	if err != nil {
		return serverError(c, "users query failed", err)
	}

	users := make([]fiber.Map, 0, len(visits))
	for _, v := range visits {
		users = append(users, fiber.Map{
			"_id":  v.UserID,
			"name": v.Name,
			"role": v.Role,
		})
	}
	return c.JSON(users)
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

func postError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrPostNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotPostAuthor):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access Denied"})
	default:
		return serverError(c, "post operation failed", err)
	}
}

func serverError(c *fiber.Ctx, msg string, err error) error {
	logger.Log.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
