package rest

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/sandbox"
)

type bulkIDsRequest struct {
	IDs []int64 `json:"ids"`
}

type bulkStatusRequest struct {
	IDs    []int64       `json:"ids"`
	Status domain.Status `json:"status"`
}

type statusRequest struct {
	Status domain.Status `json:"status"`
}

type featuredRequest struct {
	IsFeatured bool `json:"is_featured"`
}

type engagementRequest struct {
	Rate float64 `json:"rate"`
}

// ListPosts handles GET /api/admin/posts
// @Summary List posts
// @Tags posts
// @Produce json
// @Param status query string false "Status filter"
// @Param search query string false "Title, excerpt and content search"
// @Param page query int false "Page number (default: 1)"
// @Param per_page query int false "Page size (default: 20)"
// @Success 200 {object} domain.ListResponse[domain.Post]
// @Failure 400,422,500 {object} map[string]string
// @Router /api/admin/posts [get]
func (h *Handler) ListPosts(c echo.Context) error {
	var q sandbox.PostQuery
	if err := h.bindQuery(c, &q); err != nil {
		return err
	}

	resp, err := h.m.ListPosts(c.Request().Context(), q)
	if err != nil {
		return h.fail(c, err, "failed to load posts")
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) PostStats(c echo.Context) error {
	stats, err := h.m.PostStats(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to load post stats")
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetPost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	p, err := h.m.PostByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "failed to load post")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CreatePost(c echo.Context) error {
	var in domain.PostInput
	if err := h.bindBody(c, &in); err != nil {
		return err
	}

	p, err := h.m.CreatePost(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err, "failed to create post")
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var in domain.PostInput
	if err := h.bindBody(c, &in); err != nil {
		return err
	}

	p, err := h.m.UpdatePost(c.Request().Context(), id, in)
	if err != nil {
		return h.fail(c, err, "failed to update post")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	if err := h.m.DeletePost(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "failed to delete post")
	}
	return c.JSON(http.StatusOK, done("Post deleted"))
}

func (h *Handler) DuplicatePost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	p, err := h.m.DuplicatePost(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "failed to duplicate post")
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) SetPostStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var req statusRequest
	if err := h.bindBody(c, &req); err != nil {
		return err
	}

	if err := h.m.SetPostStatus(c.Request().Context(), id, req.Status); err != nil {
		return h.fail(c, err, "failed to update post status")
	}
	return c.JSON(http.StatusOK, done("Status updated"))
}

func (h *Handler) SetPostFeatured(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var req featuredRequest
	if err := h.bindBody(c, &req); err != nil {
		return err
	}

	if err := h.m.SetPostFeatured(c.Request().Context(), id, req.IsFeatured); err != nil {
		return h.fail(c, err, "failed to update post")
	}
	return c.JSON(http.StatusOK, done("Featured updated"))
}

// BulkDeletePosts handles POST /api/admin/posts/bulk-delete
// @Summary Delete several posts
// @Tags posts
// @Accept json
// @Produce json
// @Success 200 {object} domain.MutationResult
// @Failure 400,422,500 {object} map[string]string
// @Router /api/admin/posts/bulk-delete [post]
func (h *Handler) BulkDeletePosts(c echo.Context) error {
	var req bulkIDsRequest
	if err := h.bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.m.BulkDeletePosts(c.Request().Context(), req.IDs)
	if err != nil {
		return h.fail(c, err, "failed to delete posts")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) BulkPostStatus(c echo.Context) error {
	var req bulkStatusRequest
	if err := h.bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.m.BulkPostStatus(c.Request().Context(), req.IDs, req.Status)
	if err != nil {
		return h.fail(c, err, "failed to update posts")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) ExportPosts(c echo.Context) error {
	ids, err := parseIDs(c.QueryParam("ids"))
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid ids")
	}

	exp, err := h.m.ExportPosts(c.Request().Context(), c.QueryParam("format"), ids)
	if err != nil {
		return h.fail(c, err, "failed to export posts")
	}
	return attachment(c, exp)
}

func (h *Handler) ImportPosts(c echo.Context) error {
	fh, data, err := formFile(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "file is required")
	}

	res, err := h.m.ImportPosts(c.Request().Context(), fh.Filename, bytes.NewReader(data))
	if err != nil {
		return h.fail(c, err, "failed to import posts")
	}
	return c.JSON(http.StatusOK, res)
}

// RecordView handles the public POST /api/posts/:id/view beacon.
func (h *Handler) RecordView(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	count, err := h.m.RecordView(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "failed to record view")
	}
	return c.JSON(http.StatusOK, map[string]int64{"view_count": count})
}

// ReportEngagement broadcasts an engagement sample to live subscribers.
func (h *Handler) ReportEngagement(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var req engagementRequest
	if err := h.bindBody(c, &req); err != nil {
		return err
	}

	if err := h.m.ReportEngagement(c.Request().Context(), id, req.Rate); err != nil {
		return h.fail(c, err, "failed to report engagement")
	}
	return c.JSON(http.StatusOK, done("Engagement reported"))
}
