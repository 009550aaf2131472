package controller

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/hr-intervals/hr-assistant/models"
	"github.com/hr-intervals/hr-assistant/services"
)

// AdminController handles the knowledge-base management endpoints.
type AdminController struct {
	adminService services.AdminService
}

// NewAdminController creates an AdminController with the injected service.
func NewAdminController(service services.AdminService) *AdminController {
	return &AdminController{adminService: service}
}

// ListSources is the handler for GET /api/v1/admin/sources.
func (c *AdminController) ListSources(ctx *gin.Context) {
	response, err := c.adminService.ListSources(ctx.Request.Context())
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": "Failed to list sources: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// UploadDocument is the handler for POST /api/v1/admin/documents. It accepts
// a multipart upload with fields "file" and "type".
func (c *AdminController) UploadDocument(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing file: " + err.Error()})
		return
	}
	docType := ctx.PostForm("type")

	path, cleanup, err := saveUpload(ctx, file)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload: " + err.Error()})
		return
	}
	defer cleanup()

	response, err := c.adminService.UploadDocument(ctx.Request.Context(), path, docType)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": "Upload failed: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, response)
}

// ScrapeURL is the handler for POST /api/v1/admin/scrape.
func (c *AdminController) ScrapeURL(ctx *gin.Context) {
	var req models.ScrapeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	response, err := c.adminService.ScrapeURL(ctx.Request.Context(), req.URL, req.Force)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": "Scraping failed: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, response)
}

// ScrapeBatch is the handler for POST /api/v1/admin/scrape/batch. Individual
// URL failures are reported per URL, not as a request failure.
func (c *AdminController) ScrapeBatch(ctx *gin.Context) {
	var req models.BatchScrapeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	response := c.adminService.ScrapeBatch(ctx.Request.Context(), req.URLs, req.Force)
	ctx.JSON(http.StatusOK, response)
}

// DeleteSource is the handler for DELETE /api/v1/admin/sources.
func (c *AdminController) DeleteSource(ctx *gin.Context) {
	var req models.DeleteSourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := c.adminService.DeleteSource(ctx.Request.Context(), req.Source); err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": "Deletion failed: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Deleted all content from " + req.Source})
}

// UpdateDocument is the handler for PUT /api/v1/admin/sources. It accepts a
// multipart upload with fields "old_source", "file" and "type".
func (c *AdminController) UpdateDocument(ctx *gin.Context) {
	oldSource := ctx.PostForm("old_source")
	if oldSource == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing old_source field"})
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing file: " + err.Error()})
		return
	}
	docType := ctx.PostForm("type")

	path, cleanup, err := saveUpload(ctx, file)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload: " + err.Error()})
		return
	}
	defer cleanup()

	response, err := c.adminService.UpdateDocument(ctx.Request.Context(), oldSource, path, docType)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// saveUpload writes the multipart file into a temp directory keeping its
// original name, so extension dispatch and the source name both work.
func saveUpload(ctx *gin.Context, file *multipart.FileHeader) (string, func(), error) {
	dir, err := os.MkdirTemp("", "hr-upload-*")
	if err != nil {
		return "", nil, err
	}
	path := filepath.Join(dir, filepath.Base(file.Filename))
	if err := ctx.SaveUploadedFile(file, path); err != nil {
		os.RemoveAll(dir)
		return "", nil, err
	}
	return path, func() { os.RemoveAll(dir) }, nil
}
