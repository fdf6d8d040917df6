package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nimbusdrive/nimbus/backend/internal/infrastructure/monitoring"
	"github.com/nimbusdrive/nimbus/backend/internal/vfs"
)

// opStatus converts an operation error into a metrics status label.
func opStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ListFiles handles GET /api/files.
func (h *Handlers) ListFiles(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}

	opts := vfs.ListOptions{
		Search: c.Query("search"),
		SortBy: vfs.SortKey(c.DefaultQuery("sort_by", "name")),
		Order:  vfs.SortOrder(c.DefaultQuery("sort_order", "asc")),
	}

	timer := monitoring.NewTimer(h.metrics, "list")
	listing, err := sb.List(c.Query("path"), opts)
	timer.Stop(opStatus(err))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// UploadFile handles POST /api/files/upload (multipart).
func (h *Handlers) UploadFile(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer src.Close()

	timer := monitoring.NewTimer(h.metrics, "upload")
	stored, err := sb.Upload(c.PostForm("path"), file.Filename, src)
	timer.Stop(opStatus(err))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.UploadBytes.Add(float64(file.Size))

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"filename": stored,
	})
}

// DownloadFile handles GET /api/files/download. Directories come back as
// a zip archive, files as raw bytes.
func (h *Handlers) DownloadFile(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}

	timer := monitoring.NewTimer(h.metrics, "download")
	dl, err := sb.OpenDownload(c.Query("path"))
	if err != nil {
		timer.Stop("error")
		h.respondError(c, err)
		return
	}

	if dl.IsDir {
		archive, err := sb.BuildArchive(c.Request.Context(), c.Query("path"))
		timer.Stop(opStatus(err))
		if err != nil {
			h.respondError(c, err)
			return
		}
		h.metrics.ArchiveBytes.Add(float64(len(archive.Data)))
		c.Header("Content-Disposition", `attachment; filename="`+archive.Name+`"`)
		c.Data(http.StatusOK, "application/zip", archive.Data)
		return
	}

	timer.Stop("ok")
	c.Header("Content-Type", dl.MIME)
	c.FileAttachment(dl.Path, dl.Name)
}

// PreviewFile handles GET /api/files/preview.
func (h *Handlers) PreviewFile(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}

	timer := monitoring.NewTimer(h.metrics, "preview")
	preview, err := sb.OpenPreview(c.Query("path"))
	timer.Stop(opStatus(err))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+preview.Name+`"`)
	c.Data(http.StatusOK, preview.MIME, preview.Data)
}

// FolderRequest is the payload for folder creation.
type FolderRequest struct {
	Path string `json:"path"`
	Name string `json:"name" binding:"required"`
}

// CreateFolder handles POST /api/files/folder.
func (h *Handlers) CreateFolder(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}

	var req FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := monitoring.NewTimer(h.metrics, "create_folder")
	created, err := sb.CreateFolder(req.Path, req.Name)
	timer.Stop(opStatus(err))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder created successfully", "path": created})
}

// RenameRequest is the payload for renames.
type RenameRequest struct {
	Path    string `json:"path" binding:"required"`
	NewName string `json:"new_name" binding:"required"`
}

// RenameFile handles PUT /api/files/rename.
func (h *Handlers) RenameFile(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}

	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := monitoring.NewTimer(h.metrics, "rename")
	renamed, err := sb.Rename(req.Path, req.NewName)
	timer.Stop(opStatus(err))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Renamed successfully", "path": renamed})
}

// TransferRequest is the payload for moves and copies.
type TransferRequest struct {
	SourcePath      string `json:"source_path" binding:"required"`
	DestinationPath string `json:"destination_path" binding:"required"`
}

// MoveFile handles PUT /api/files/move.
func (h *Handlers) MoveFile(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := monitoring.NewTimer(h.metrics, "move")
	moved, err := sb.Move(req.SourcePath, req.DestinationPath)
	timer.Stop(opStatus(err))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Moved successfully", "path": moved})
}

// CopyFile handles POST /api/files/copy.
func (h *Handlers) CopyFile(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := monitoring.NewTimer(h.metrics, "copy")
	copied, err := sb.Copy(req.SourcePath, req.DestinationPath)
	timer.Stop(opStatus(err))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Copied successfully", "path": copied})
}

// DeleteFile handles DELETE /api/files.
func (h *Handlers) DeleteFile(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}

	timer := monitoring.NewTimer(h.metrics, "delete")
	err := sb.Delete(c.Query("path"))
	timer.Stop(opStatus(err))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}

// SearchRequest is the payload for searches.
type SearchRequest struct {
	Query    string `json:"query" binding:"required"`
	Path     string `json:"path"`
	FileType string `json:"file_type"`
}

// SearchFiles handles POST /api/files/search.
func (h *Handlers) SearchFiles(c *gin.Context) {
	sb, ok := h.sandbox(c)
	if !ok {
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := monitoring.NewTimer(h.metrics, "search")
	result, err := sb.Search(c.Request.Context(), req.Path, req.Query, vfs.Kind(req.FileType))
	timer.Stop(opStatus(err))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
