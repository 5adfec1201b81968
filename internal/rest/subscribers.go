package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/sandbox"
)

func (h *Handler) ListSubscribers(c echo.Context) error {
	var q sandbox.SubscriberQuery
	if err := h.bindQuery(c, &q); err != nil {
		return err
	}

	resp, err := h.m.ListSubscribers(c.Request().Context(), q)
	if err != nil {
		return h.fail(c, err, "failed to load subscribers")
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) SubscriberStats(c echo.Context) error {
	stats, err := h.m.SubscriberStats(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to load subscriber stats")
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) CreateSubscriber(c echo.Context) error {
	var in domain.SubscriberInput
	if err := h.bindBody(c, &in); err != nil {
		return err
	}

	s, err := h.m.CreateSubscriber(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err, "failed to create subscriber")
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *Handler) DeleteSubscriber(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	if err := h.m.DeleteSubscriber(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "failed to delete subscriber")
	}
	return c.JSON(http.StatusOK, done("Subscriber deleted"))
}

func (h *Handler) ExportSubscribers(c echo.Context) error {
	var q sandbox.SubscriberQuery
	if err := h.bindQuery(c, &q); err != nil {
		return err
	}

	exp, err := h.m.ExportSubscribers(c.Request().Context(), q)
	if err != nil {
		return h.fail(c, err, "failed to export subscribers")
	}
	return attachment(c, exp)
}
