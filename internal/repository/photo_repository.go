package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"snaphub/internal/models"
)

type PhotoRepository struct {
	col *mongo.Collection
}

func NewPhotoRepository(db *mongo.Database, collection string) *PhotoRepository {
	return &PhotoRepository{col: db.Collection(collection)}
}

func (r *PhotoRepository) Create(ctx context.Context, p *models.Photo) error {
	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *PhotoRepository) FindByID(ctx context.Context, id string) (*models.Photo, error) {
	var photo models.Photo
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&photo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	normalize(&photo)
	return &photo, nil
}

// FindAll returns every photo, newest first.
func (r *PhotoRepository) FindAll(ctx context.Context) ([]models.Photo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	// [] instead of null when the collection is empty
	res := make([]models.Photo, 0)
	if err := cursor.All(ctx, &res); err != nil {
		return nil, err
	}
	for i := range res {
		normalize(&res[i])
	}
	return res, nil
}

// ReplaceVersioned writes the whole document back, but only if nobody else
// replaced it since it was read. p.Version must hold the version that was
// read; on success the stored document carries p.Version+1.
func (r *PhotoRepository) ReplaceVersioned(ctx context.Context, p *models.Photo) error {
	expected := p.Version
	p.Version = expected + 1

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID, "version": expected}, p)
	if err != nil {
		p.Version = expected
		return err
	}
	if res.MatchedCount == 0 {
		p.Version = expected
		return models.ErrConflict
	}
	return nil
}

func normalize(p *models.Photo) {
	if p.People == nil {
		p.People = make([]string, 0)
	}
	if p.Comments == nil {
		p.Comments = make([]models.Comment, 0)
	}
}
