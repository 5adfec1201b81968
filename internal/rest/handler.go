package rest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-pg/urlstruct"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/sandbox"
)

const maxUploadSize = 32 << 20

type Handler struct {
	m   *sandbox.Manager
	log *slog.Logger
}

func NewHandler(m *sandbox.Manager, log *slog.Logger) *Handler {
	return &Handler{
		m:   m,
		log: log,
	}
}

func (h *Handler) handleError(c echo.Context, err error, statusCode int, message string) error {
	h.log.Error("handleError", "error", err, "statusCode", statusCode, "message", message)
	return c.JSON(statusCode, map[string]string{"error": message})
}

// fail maps manager errors onto status codes. Validation errors carry their
// own message; everything else falls back to message.
func (h *Handler) fail(c echo.Context, err error, message string) error {
	var verr *sandbox.ValidationError
	switch {
	case errors.As(err, &verr):
		return h.handleError(c, err, http.StatusUnprocessableEntity, verr.Error())
	case errors.Is(err, sandbox.ErrNotFound):
		return h.handleError(c, err, http.StatusNotFound, "not found")
	default:
		return h.handleError(c, err, http.StatusInternalServerError, message)
	}
}

func (h *Handler) bindQuery(c echo.Context, dst any) error {
	if err := urlstruct.Unmarshal(c.Request().Context(), c.QueryParams(), dst); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid query parameters")
	}
	return nil
}

func (h *Handler) bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}
	return nil
}

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s %q", name, c.Param(name))
	}
	return id, nil
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// formFile reads the multipart field "file".
func formFile(c echo.Context) (*multipart.FileHeader, []byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, nil, fmt.Errorf("read form file: %w", err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open form file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		return nil, nil, fmt.Errorf("read form file: %w", err)
	}
	return fh, data, nil
}

func attachment(c echo.Context, exp sandbox.Export) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exp.Filename))
	return c.Blob(http.StatusOK, exp.ContentType, exp.Data)
}

func done(message string) domain.MutationResult {
	return domain.MutationResult{Success: true, Message: message, Count: 1}
}
