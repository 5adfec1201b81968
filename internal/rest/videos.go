package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/sandbox"
)

type bulkPublishRequest struct {
	VideoIDs []int64 `json:"video_ids"`
	Publish  bool    `json:"publish"`
}

type bulkVideoDeleteRequest struct {
	VideoIDs []int64 `json:"video_ids"`
	Force    bool    `json:"force"`
}

func (h *Handler) ListVideos(c echo.Context) error {
	var q sandbox.VideoQuery
	if err := h.bindQuery(c, &q); err != nil {
		return err
	}

	resp, err := h.m.ListVideos(c.Request().Context(), q)
	if err != nil {
		return h.fail(c, err, "failed to load videos")
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) VideoStats(c echo.Context) error {
	stats, err := h.m.VideoStats(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to load video stats")
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) VideoOptions(c echo.Context) error {
	opts, err := h.m.VideoOptions(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to load video options")
	}
	return c.JSON(http.StatusOK, opts)
}

func (h *Handler) GetVideo(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	v, err := h.m.GetVideo(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "failed to load video")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) CreateVideo(c echo.Context) error {
	var in domain.VideoInput
	if err := h.bindBody(c, &in); err != nil {
		return err
	}

	v, err := h.m.CreateVideo(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err, "failed to create video")
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) UpdateVideo(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var in domain.VideoInput
	if err := h.bindBody(c, &in); err != nil {
		return err
	}

	v, err := h.m.UpdateVideo(c.Request().Context(), id, in)
	if err != nil {
		return h.fail(c, err, "failed to update video")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) DeleteVideo(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	if err := h.m.DeleteVideo(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "failed to delete video")
	}
	return c.JSON(http.StatusOK, done("Video deleted"))
}

func (h *Handler) BulkPublishVideos(c echo.Context) error {
	var req bulkPublishRequest
	if err := h.bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.m.BulkPublishVideos(c.Request().Context(), req.VideoIDs, req.Publish)
	if err != nil {
		return h.fail(c, err, "failed to publish videos")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) BulkDeleteVideos(c echo.Context) error {
	var req bulkVideoDeleteRequest
	if err := h.bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.m.BulkDeleteVideos(c.Request().Context(), req.VideoIDs, req.Force)
	if err != nil {
		return h.fail(c, err, "failed to delete videos")
	}
	return c.JSON(http.StatusOK, res)
}
