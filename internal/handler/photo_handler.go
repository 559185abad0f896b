package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"snaphub/internal/models"
	service "snaphub/internal/services"
	"snaphub/internal/utils"
)

type PhotoService interface {
	Upload(ctx context.Context, in service.UploadInput) (*models.Photo, error)
	Search(ctx context.Context, q string) ([]models.Photo, error)
	GetByID(ctx context.Context, id string) (*models.Photo, error)
	AddComment(ctx context.Context, photoID string, in service.CommentInput) (*models.Photo, error)
}

type PhotoHandler struct {
	svc PhotoService
}

func NewPhotoHandler(svc PhotoService) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

// RegisterRoutes mounts the full HTTP surface on the router.
func (h *PhotoHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Banner)
	router.GET("/health", h.Health)

	api := router.Group("/api/photos")
	{
		api.POST("", h.Upload)
		api.GET("", h.List)
		api.GET("/:id", h.GetByID)
		api.POST("/:id/comments", h.AddComment)
	}
}

func (h *PhotoHandler) Banner(c *gin.Context) {
	c.String(http.StatusOK, "SnapHub API")
}

func (h *PhotoHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "service": "SnapHub API"})
}

func (h *PhotoHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	photo, err := h.svc.Upload(c.Request.Context(), service.UploadInput{
		File:        file,
		Size:        header.Size,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Title:       c.PostForm("title"),
		Caption:     c.PostForm("caption"),
		Location:    c.PostForm("location"),
		People:      c.PostForm("people"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

func (h *PhotoHandler) List(c *gin.Context) {
	photos, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

func (h *PhotoHandler) GetByID(c *gin.Context) {
	photo, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}

type commentRequest struct {
	Name    string `json:"name" validate:"max=120"`
	Comment string `json:"comment" validate:"max=5000"`
	Rating  any    `json:"rating"`
}

func (h *PhotoHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := utils.GetValidator().Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid input",
			"details": strings.Join(utils.ParseErrors(err), "; "),
		})
		return
	}

	photo, err := h.svc.AddComment(c.Request.Context(), c.Param("id"), service.CommentInput{
		Name:    req.Name,
		Comment: req.Comment,
		Rating:  req.Rating,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

// respondError maps service errors onto the API's error envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure", "details": err.Error()})
	}
}
