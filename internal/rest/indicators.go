package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/sandbox"
)

type toggleRequest struct {
	Field string `json:"field"`
}

func (h *Handler) ListIndicators(c echo.Context) error {
	var q sandbox.IndicatorQuery
	if err := h.bindQuery(c, &q); err != nil {
		return err
	}

	resp, err := h.m.ListIndicators(c.Request().Context(), q)
	if err != nil {
		return h.fail(c, err, "failed to load indicators")
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) IndicatorStats(c echo.Context) error {
	stats, err := h.m.IndicatorStats(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to load indicator stats")
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) CreateIndicator(c echo.Context) error {
	var in domain.IndicatorInput
	if err := h.bindBody(c, &in); err != nil {
		return err
	}

	ind, err := h.m.CreateIndicator(c.Request().Context(), in)
	if err != nil {
		return h.fail(c, err, "failed to create indicator")
	}
	return c.JSON(http.StatusCreated, ind)
}

func (h *Handler) UpdateIndicator(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var in domain.IndicatorInput
	if err := h.bindBody(c, &in); err != nil {
		return err
	}

	ind, err := h.m.UpdateIndicator(c.Request().Context(), id, in)
	if err != nil {
		return h.fail(c, err, "failed to update indicator")
	}
	return c.JSON(http.StatusOK, ind)
}

func (h *Handler) DeleteIndicator(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	if err := h.m.DeleteIndicator(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "failed to delete indicator")
	}
	return c.JSON(http.StatusOK, done("Indicator deleted"))
}

func (h *Handler) ToggleIndicator(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	var req toggleRequest
	if err := h.bindBody(c, &req); err != nil {
		return err
	}

	ind, err := h.m.ToggleIndicator(c.Request().Context(), id, req.Field)
	if err != nil {
		return h.fail(c, err, "failed to toggle indicator")
	}
	return c.JSON(http.StatusOK, ind)
}

func (h *Handler) UploadIndicatorFile(c echo.Context) error {
	return h.indicatorUpload(c, domain.IndicatorFilePlatform, "platform")
}

func (h *Handler) UploadIndicatorDoc(c echo.Context) error {
	return h.indicatorUpload(c, domain.IndicatorFileDoc, "title")
}

func (h *Handler) indicatorUpload(c echo.Context, kind, labelField string) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid id")
	}

	fh, data, err := formFile(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "file is required")
	}

	f, err := h.m.AddIndicatorFile(c.Request().Context(), id, kind, c.FormValue(labelField), fh.Filename, data)
	if err != nil {
		return h.fail(c, err, "failed to upload indicator file")
	}
	return c.JSON(http.StatusCreated, f)
}
