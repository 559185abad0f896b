package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"snaphub/internal/models"
)

// replaceAttempts bounds the optimistic-concurrency retry loop on comment
// insertion.
const replaceAttempts = 3

type PhotoRepository interface {
	Create(ctx context.Context, p *models.Photo) error
	FindByID(ctx context.Context, id string) (*models.Photo, error)
	FindAll(ctx context.Context) ([]models.Photo, error)
	ReplaceVersioned(ctx context.Context, p *models.Photo) error
}

type BlobStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

type PhotoService struct {
	repo  PhotoRepository
	blobs BlobStorage
}

func NewPhotoService(repo PhotoRepository, blobs BlobStorage) *PhotoService {
	return &PhotoService{repo: repo, blobs: blobs}
}

// UploadInput carries one multipart upload: the file payload plus the
// free-text metadata fields.
type UploadInput struct {
	File        io.Reader
	Size        int64
	Filename    string
	ContentType string
	Title       string
	Caption     string
	Location    string
	People      string // comma-separated
}

// CommentInput is the raw comment payload. Rating is left untyped because
// clients send anything from numbers to strings; coercion happens here.
type CommentInput struct {
	Name    string
	Comment string
	Rating  any
}

// Upload stores the image blob first, then the metadata document. A document
// write that fails after the blob went up leaves the blob in place.
func (s *PhotoService) Upload(ctx context.Context, in UploadInput) (*models.Photo, error) {
	if in.File == nil {
		return nil, fmt.Errorf("file is required: %w", models.ErrValidation)
	}

	id := uuid.NewString()
	blobName := id + "." + fileExtension(in.Filename)

	contentType := in.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	url, err := s.blobs.Upload(ctx, blobName, in.File, in.Size, contentType)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		ID:        id,
		BlobName:  blobName,
		ImageURL:  url,
		Title:     in.Title,
		Caption:   in.Caption,
		Location:  in.Location,
		People:    parsePeople(in.People),
		CreatedAt: time.Now().UTC(),
		Comments:  make([]models.Comment, 0),
	}

	if err := s.repo.Create(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *PhotoService) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	return s.repo.FindByID(ctx, id)
}

// Search returns all photos newest first, filtered to those whose text fields
// contain q when q is non-empty. Full scan-and-filter; fine at this scale.
func (s *PhotoService) Search(ctx context.Context, q string) ([]models.Photo, error) {
	photos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return photos, nil
	}

	res := make([]models.Photo, 0)
	for _, p := range photos {
		if strings.Contains(searchText(p), q) {
			res = append(res, p)
		}
	}
	return res, nil
}

// AddComment prepends a comment to the photo and, for nonzero ratings, folds
// it into the running average. Retries the versioned replace on conflict.
func (s *PhotoService) AddComment(ctx context.Context, photoID string, in CommentInput) (*models.Photo, error) {
	text := strings.TrimSpace(in.Comment)
	if text == "" {
		return nil, fmt.Errorf("comment is required: %w", models.ErrValidation)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Anonymous"
	}
	rating := coerceRating(in.Rating)

	var lastErr error
	for attempt := 0; attempt < replaceAttempts; attempt++ {
		photo, err := s.repo.FindByID(ctx, photoID)
		if err != nil {
			return nil, err
		}

		comment := models.Comment{
			ID:        uuid.NewString(),
			Name:      name,
			Comment:   text,
			Rating:    rating,
			CreatedAt: time.Now().UTC(),
		}
		photo.Comments = append([]models.Comment{comment}, photo.Comments...)

		if rating > 0 {
			total := photo.AvgRating*float64(photo.RatingCount) + float64(rating)
			photo.RatingCount++
			photo.AvgRating = math.Round(total/float64(photo.RatingCount)*10) / 10
		}

		if err := s.repo.ReplaceVersioned(ctx, photo); err != nil {
			if errors.Is(err, models.ErrConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return photo, nil
	}
	return nil, lastErr
}

// fileExtension takes the segment after the last dot, defaulting to jpg.
func fileExtension(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		return filename[i+1:]
	}
	return "jpg"
}

// parsePeople splits a comma-separated list, trimming entries and dropping
// empty ones.
func parsePeople(raw string) []string {
	people := make([]string, 0)
	if raw == "" {
		return people
	}
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			people = append(people, name)
		}
	}
	return people
}

// coerceRating turns whatever JSON delivered into an integer in [0,5].
// Anything unparsable or non-finite counts as 0, which keeps the comment out
// of the average.
func coerceRating(v any) int {
	var r float64
	switch t := v.(type) {
	case float64:
		r = t
	case int:
		r = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		r = parsed
	default:
		return 0
	}

	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	if r < 0 {
		r = 0
	}
	if r > 5 {
		r = 5
	}
	return int(r)
}

func searchText(p models.Photo) string {
	parts := []string{p.Title, p.Caption, p.Location}
	parts = append(parts, p.People...)
	return strings.ToLower(strings.Join(parts, " "))
}
