package rest

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/sandbox"
)

func (h *Handler) ListContent(c echo.Context) error {
	var q sandbox.ContentQuery
	if err := h.bindQuery(c, &q); err != nil {
		return err
	}

	resp, err := h.m.ListContent(c.Request().Context(), q)
	if err != nil {
		return h.fail(c, err, "failed to load content")
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ContentStats(c echo.Context) error {
	stats, err := h.m.ContentStats(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to load content stats")
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetContent(c echo.Context) error {
	content, err := h.m.GetContent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err, "failed to load content")
	}
	return c.JSON(http.StatusOK, content)
}

func (h *Handler) CreateContent(c echo.Context) error {
	var in domain.ContentInput
	if err := h.bindBody(c, &in); err != nil {
		return err
	}

	content, err := h.m.CreateContent(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err, "failed to create content")
	}
	return c.JSON(http.StatusCreated, content)
}

func (h *Handler) UpdateContent(c echo.Context) error {
	var in domain.ContentInput
	if err := h.bindBody(c, &in); err != nil {
		return err
	}

	content, err := h.m.UpdateContent(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return h.fail(c, err, "failed to update content")
	}
	return c.JSON(http.StatusOK, content)
}

func (h *Handler) DeleteContent(c echo.Context) error {
	if err := h.m.DeleteContent(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err, "failed to delete content")
	}
	return c.JSON(http.StatusOK, done("Content deleted"))
}

func (h *Handler) TransitionContent(c echo.Context) error {
	var req statusRequest
	if err := h.bindBody(c, &req); err != nil {
		return err
	}

	content, err := h.m.TransitionContent(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return h.fail(c, err, "failed to change content status")
	}
	return c.JSON(http.StatusOK, content)
}

func (h *Handler) ContentRevisions(c echo.Context) error {
	revs, err := h.m.Revisions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err, "failed to load revisions")
	}
	return c.JSON(http.StatusOK, revs)
}

func (h *Handler) RestoreRevision(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 1 {
		return h.handleError(c, err, http.StatusBadRequest, "invalid revision")
	}

	content, err := h.m.RestoreRevision(c.Request().Context(), c.Param("id"), n)
	if err != nil {
		return h.fail(c, err, "failed to restore revision")
	}
	return c.JSON(http.StatusOK, content)
}
