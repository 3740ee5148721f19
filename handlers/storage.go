package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"lexaid/services/storage"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler serves file upload and download-URL endpoints.
type StorageHandler struct {
	Storage storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{Storage: svc}
}

// uploadTo receives a multipart file and uploads it to the given folder,
// returning the permanent public ID.
func (h *StorageHandler) uploadTo(c *gin.Context, destFolder string) {
	logger := getLogger(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "a file field is required")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		logger.Error("failed to buffer upload", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Upload failed", "could not read the uploaded file")
		return
	}
	defer os.Remove(tmpPath)

	publicID, err := h.Storage.UploadFile(c.Request.Context(), tmpPath, destFolder)
	if err != nil {
		logger.Error("upload failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Upload failed", "could not store the file")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"publicId": publicID})
}

// UploadReportHandler stores a consultation report file. The returned public
// ID goes into the appointment's reportFile field on completion.
func (h *StorageHandler) UploadReportHandler(c *gin.Context) {
	h.uploadTo(c, storage.FolderReports)
}

// UploadDocumentHandler stores a supporting document attached to a
// consultation request at intake.
func (h *StorageHandler) UploadDocumentHandler(c *gin.Context) {
	h.uploadTo(c, storage.FolderDocuments)
}

// UploadProfilePhotoHandler stores a profile photo.
func (h *StorageHandler) UploadProfilePhotoHandler(c *gin.Context) {
	h.uploadTo(c, storage.FolderProfilePhotos)
}

// ReportDownloadURLHandler hands out a short-lived signed URL for a report
// file. Reports never get a permanent public URL.
func (h *StorageHandler) ReportDownloadURLHandler(c *gin.Context) {
	publicID := c.Query("publicId")
	if publicID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "publicId is required")
		return
	}
	url, err := h.Storage.GetSecureDownloadURL(c.Request.Context(), "raw", publicID, 15*time.Minute)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
