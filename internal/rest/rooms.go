package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) Rooms(c echo.Context) error {
	rooms, err := h.m.Rooms(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "failed to load trading rooms")
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *Handler) RoomStats(c echo.Context) error {
	stats, err := h.m.RoomStats(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return h.fail(c, err, "failed to load room stats")
	}
	return c.JSON(http.StatusOK, stats)
}

// UploadMedia handles POST /api/admin/media/upload
// @Summary Upload a media file
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Media file"
// @Success 201 {object} domain.Media
// @Failure 400,422,500 {object} map[string]string
// @Router /api/admin/media/upload [post]
func (h *Handler) UploadMedia(c echo.Context) error {
	fh, data, err := formFile(c)
	if err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "file is required")
	}

	media, err := h.m.UploadMedia(c.Request().Context(), fh.Filename, data)
	if err != nil {
		return h.fail(c, err, "failed to upload media")
	}
	return c.JSON(http.StatusCreated, media)
}
