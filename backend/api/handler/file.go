package handler

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"cadvault/backend/api/middleware"
	"cadvault/backend/common"
	"cadvault/backend/library/storage"
	"cadvault/backend/model"

	"github.com/gin-gonic/gin"
)

// FileHandler owns the owner-scoped upload, list and download endpoints.
type FileHandler struct {
	store *storage.Store
	cfg   *common.Config
}

func NewFileHandler(store *storage.Store, cfg *common.Config) *FileHandler {
	return &FileHandler{store: store, cfg: cfg}
}

// Upload accepts a multipart upload in the "file" field, writes it under the
// owner's directory and records ownership. The disk write and the row insert
// are not joined in a transaction: a crash between the two leaks an orphan
// file on disk with no row, which is accepted and never rolled back.
func (h *FileHandler) Upload(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		common.RespMessage(c, http.StatusUnauthorized, "User invalid!")
		return
	}

	// Cap the payload before anything is written anywhere.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			common.RespMessage(c, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		common.RespMessage(c, http.StatusBadRequest, "No file provided")
		return
	}

	storagePath, sanitized, err := h.store.BuildPath(user.ID, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedFileType) {
			common.RespMessage(c, http.StatusBadRequest, "Unsupported file type")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "Error saving file", err)
		return
	}

	if err := c.SaveUploadedFile(fileHeader, storagePath); err != nil {
		common.RespError(c, http.StatusInternalServerError, "Error saving file", err)
		return
	}

	record, err := model.InsertFile(sanitized, storagePath, user.ID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "Error saving file", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       record.ID,
		"filename": record.Filename,
	})
}

// List returns the caller's files, newest first.
func (h *FileHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		common.RespMessage(c, http.StatusUnauthorized, "User invalid!")
		return
	}

	files, err := model.ListFilesByOwner(user.ID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	out := make([]gin.H, 0, len(files))
	for _, f := range files {
		out = append(out, gin.H{
			"id":          f.ID,
			"filename":    f.Filename,
			"uploaded_at": common.FormatTime(f.CreatedAt),
		})
	}
	c.JSON(http.StatusOK, gin.H{"files": out})
}

// Download streams the file bytes if the caller owns the record. Missing and
// not-owned collapse into the same 404 so existence never leaks.
func (h *FileHandler) Download(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		common.RespMessage(c, http.StatusUnauthorized, "User invalid!")
		return
	}

	fileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespMessage(c, http.StatusNotFound, "File not found")
		return
	}

	record, err := model.GetFileForOwner(fileID, user.ID)
	if err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			common.RespMessage(c, http.StatusNotFound, "File not found")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if _, err := os.Stat(record.Filepath); err != nil {
		common.RespError(c, http.StatusNotFound, "File not found", err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+record.Filename+`"`)
	c.File(record.Filepath)
}
