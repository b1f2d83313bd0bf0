package rest

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/kagari-dev/driftboard"
	"github.com/kagari-dev/driftboard/internal/domain"
	"github.com/kagari-dev/driftboard/internal/present/rest/presenter"
	"github.com/kagari-dev/driftboard/internal/service"
	"github.com/kagari-dev/driftboard/internal/usecase"
)

type Handler struct {
	feed       *usecase.FeedUsecase
	engagement *usecase.EngagementUsecase
	content    *usecase.ContentUsecase
	catalog    *service.TemplateCatalog
}

func NewHandler(
	feed *usecase.FeedUsecase,
	engagement *usecase.EngagementUsecase,
	content *usecase.ContentUsecase,
	catalog *service.TemplateCatalog,
) *Handler {
	return &Handler{
		feed:       feed,
		engagement: engagement,
		content:    content,
		catalog:    catalog,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/feed", h.handleFeed)
	e.POST("/api/v1/content", h.handleCreateContent)
	e.GET("/api/v1/content/:id", h.handleGetContent)
	e.DELETE("/api/v1/content/:id", h.handleDeleteContent)
	e.POST("/api/v1/content/:id/like", h.handleToggleLike)
	e.POST("/api/v1/content/:id/save", h.handleToggleSave)
	e.GET("/api/v1/content/:id/engagement", h.handleEngagementStatus)
	e.GET("/api/v1/content/:id/comments", h.handleListComments)
	e.POST("/api/v1/content/:id/comments", h.handleAddComment)
	e.GET("/api/v1/templates", h.handleTemplates)
	e.POST("/api/v1/templates/refresh", h.handleTemplatesRefresh)
}

// requester returns the actor id resolved by the auth middleware, or an
// empty string for anonymous requests.
func requester(c echo.Context) string {
	actor, _ := c.Request().Context().Value(domain.RequesterIdCtxKey).(string)
	return actor
}

// respondError maps the domain error taxonomy onto HTTP statuses.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		return presenter.BadRequest(c, err)
	case errors.Is(err, domain.ErrInvalidActor):
		return presenter.BadRequest(c, err)
	case errors.Is(err, domain.ErrNotFound):
		return presenter.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return presenter.Forbidden(c)
	case errors.Is(err, domain.ErrStoreUnavailable):
		return presenter.Unavailable(c, err)
	default:
		return presenter.InternalError(c, err)
	}
}

func (h *Handler) handleFeed(c echo.Context) error {
	ctx := c.Request().Context()

	query := driftboard.FeedQuery{
		Search: c.QueryParam("q"),
		Actor:  requester(c),
		Sort:   driftboard.SortNewest,
	}

	if sortStr := c.QueryParam("sort"); sortStr != "" {
		sort, ok := driftboard.ParseSortMode(sortStr)
		if !ok {
			return presenter.BadRequestMessage(c, "invalid sort parameter")
		}
		query.Sort = sort
	}

	if periodStr := c.QueryParam("period"); periodStr != "" {
		period, ok := driftboard.ParseTrendingPeriod(periodStr)
		if !ok {
			return presenter.BadRequestMessage(c, "invalid period parameter")
		}
		query.Period = period
	}

	if categoryStr := c.QueryParam("category"); categoryStr != "" {
		category, ok := driftboard.ParseCategory(categoryStr)
		if !ok {
			return presenter.BadRequestMessage(c, "invalid category parameter")
		}
		query.Category = &category
	}

	if pageStr := c.QueryParam("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid page parameter")
		}
		query.Page = page
	}

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid limit parameter")
		}
		query.PageSize = limit
	}

	result, err := h.feed.GetFeed(ctx, query)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, result)
}

type createContentRequest struct {
	Title       string   `json:"title"`
	MediaURL    string   `json:"mediaURL"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	OwnerName   string   `json:"ownerName"`
	Public      *bool    `json:"public"`
}

func (h *Handler) handleCreateContent(c echo.Context) error {
	ctx := c.Request().Context()

	actor := requester(c)
	if actor == "" {
		return presenter.Unauthorized(c)
	}

	var req createContentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	public := true
	if req.Public != nil {
		public = *req.Public
	}

	item, err := h.content.Create(ctx, usecase.CreateInput{
		Title:       req.Title,
		MediaURL:    req.MediaURL,
		Description: req.Description,
		Category:    driftboard.Category(req.Category),
		Tags:        req.Tags,
		OwnerID:     actor,
		OwnerName:   req.OwnerName,
		Public:      public,
	})
	if err != nil {
		return respondError(c, err)
	}
	return presenter.Created(c, item)
}

func (h *Handler) handleGetContent(c echo.Context) error {
	ctx := c.Request().Context()

	item, err := h.content.Get(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	feedItem := driftboard.FeedItem{ContentItem: item}
	if actor := requester(c); actor != "" {
		status, err := h.engagement.Status(ctx, actor, item.ID)
		if err != nil {
			return respondError(c, err)
		}
		feedItem.IsLiked = status.Liked
		feedItem.IsSaved = status.Saved
	}

	return presenter.OK(c, feedItem)
}

func (h *Handler) handleDeleteContent(c echo.Context) error {
	ctx := c.Request().Context()

	actor := requester(c)
	if actor == "" {
		return presenter.Unauthorized(c)
	}

	if err := h.content.Delete(ctx, actor, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleToggleLike(c echo.Context) error {
	ctx := c.Request().Context()

	actor := requester(c)
	if actor == "" {
		return presenter.Unauthorized(c)
	}

	result, err := h.engagement.ToggleLike(ctx, actor, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, result)
}

func (h *Handler) handleToggleSave(c echo.Context) error {
	ctx := c.Request().Context()

	actor := requester(c)
	if actor == "" {
		return presenter.Unauthorized(c)
	}

	result, err := h.engagement.ToggleSave(ctx, actor, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, result)
}

func (h *Handler) handleEngagementStatus(c echo.Context) error {
	ctx := c.Request().Context()

	actor := requester(c)
	if actor == "" {
		return presenter.Unauthorized(c)
	}

	status, err := h.engagement.Status(ctx, actor, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, status)
}

type addCommentRequest struct {
	Body string `json:"body"`
}

func (h *Handler) handleAddComment(c echo.Context) error {
	ctx := c.Request().Context()

	actor := requester(c)
	if actor == "" {
		return presenter.Unauthorized(c)
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	comment, err := h.content.AddComment(ctx, actor, c.Param("id"), req.Body)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.Created(c, comment)
}

func (h *Handler) handleListComments(c echo.Context) error {
	ctx := c.Request().Context()

	comments, err := h.content.ListComments(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, comments)
}

func (h *Handler) handleTemplates(c echo.Context) error {
	ctx := c.Request().Context()

	templates, err := h.catalog.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, templates)
}

func (h *Handler) handleTemplatesRefresh(c echo.Context) error {
	ctx := c.Request().Context()

	if requester(c) == "" {
		return presenter.Unauthorized(c)
	}

	templates, err := h.catalog.Refresh(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return presenter.OK(c, templates)
}
