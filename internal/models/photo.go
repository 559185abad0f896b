package models

import "time"

type Photo struct {
	ID          string    `bson:"_id" json:"id"`
	BlobName    string    `bson:"blob_name" json:"blobName"`
	ImageURL    string    `bson:"image_url" json:"imageUrl"`
	Title       string    `bson:"title" json:"title"`
	Caption     string    `bson:"caption" json:"caption"`
	Location    string    `bson:"location" json:"location"`
	People      []string  `bson:"people" json:"people"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	Comments    []Comment `bson:"comments" json:"comments"`
	AvgRating   float64   `bson:"avg_rating" json:"avgRating"`
	RatingCount int       `bson:"rating_count" json:"ratingCount"`
	// Version guards the read-modify-write on comment insertion; bumped on
	// every replace, never exposed over the API.
	Version int64 `bson:"version" json:"-"`
}

type Comment struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Comment   string    `bson:"comment" json:"comment"`
	Rating    int       `bson:"rating" json:"rating"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
