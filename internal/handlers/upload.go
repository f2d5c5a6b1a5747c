package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fotoprint/fotoprint/internal/logging"
	"github.com/fotoprint/fotoprint/internal/objectstore"
)

type UploadHandler struct {
	Signer objectstore.Signer
}

// SignedUploadURL hands the client a pre-signed PUT URL together with the
// storage path it should later reference in uploadedPhotoPaths.
func (h *UploadHandler) SignedUploadURL(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload.signed_url")

	var req struct {
		FileName    string `json:"fileName"`
		ContentType string `json:"contentType"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Имя файла и тип содержимого не указаны")
	}
	if req.FileName == "" || req.ContentType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Имя файла и тип содержимого не указаны")
	}

	if h.Signer == nil {
		l.Error("signed_url_error", "reason", "object storage is not configured")
		return echo.NewHTTPError(http.StatusInternalServerError, "Ошибка создания URL для загрузки")
	}

	signed, err := h.Signer.SignUpload(ctx, req.FileName, req.ContentType)
	if err != nil {
		l.Error("signed_url_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Ошибка создания URL для загрузки")
	}

	return c.JSON(http.StatusOK, signed)
}
