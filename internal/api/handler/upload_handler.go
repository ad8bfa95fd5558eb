package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/xxtryitxx/horizontos/internal/core/ports"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type UploadHandler struct {
	uploads ports.UploadService
}

func NewUploadHandler(uploads ports.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Avatar replaces the caller's profile picture.
//
// @Summary      Upload an avatar
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /uploads/avatar [post]
func (h *UploadHandler) Avatar(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	if header.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "file too large")
	}
	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer file.Close()

	url, err := h.uploads.UploadAvatar(c.Request().Context(), uid, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// Voice stores a voice message addressed to a receiver.
//
// @Summary      Upload a voice message
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file         formData  file    true   "Audio clip"
// @Param        receiver_id  formData  string  true   "Receiver user ID"
// @Param        duration     formData  int     true   "Duration in seconds"
// @Success      201  {object}  domain.VoiceMessage
// @Failure      400  {object}  map[string]string
// @Router       /uploads/voice [post]
func (h *UploadHandler) Voice(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	receiverID := c.FormValue("receiver_id")
	if receiverID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "receiver_id is required")
	}
	duration, _ := strconv.Atoi(c.FormValue("duration"))

	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	if header.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "file too large")
	}
	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	msg, err := h.uploads.UploadVoice(c.Request().Context(), uid, receiverID, duration, mimeType, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// VoiceInbox lists voice messages addressed to the caller.
//
// @Summary      List received voice messages
// @Tags         uploads
// @Produce      json
// @Success      200  {array}  domain.VoiceMessage
// @Router       /uploads/voice [get]
func (h *UploadHandler) VoiceInbox(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	msgs, err := h.uploads.VoiceInboxFor(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// File shares an arbitrary file, optionally scoped to a conversation.
//
// @Summary      Share a file
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file             formData  file    true   "File"
// @Param        conversation_id  formData  string  false  "Conversation key"
// @Success      201  {object}  domain.FileShare
// @Failure      400  {object}  map[string]string
// @Router       /uploads/files [post]
func (h *UploadHandler) File(c echo.Context) error {
	uid, err := ctxUID(c)
	if err != nil {
		return err
	}
	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	if header.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "file too large")
	}
	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer file.Close()

	share, err := h.uploads.ShareFile(
		c.Request().Context(),
		uid,
		header.Filename,
		header.Header.Get("Content-Type"),
		c.FormValue("conversation_id"),
		header.Size,
		file,
	)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, share)
}

// Files lists recently shared files.
//
// @Summary      List shared files
// @Tags         uploads
// @Produce      json
// @Success      200  {array}  domain.FileShare
// @Router       /uploads/files [get]
func (h *UploadHandler) Files(c echo.Context) error {
	if _, err := ctxUID(c); err != nil {
		return err
	}
	files, err := h.uploads.SharedFiles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, files)
}
