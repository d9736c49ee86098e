package repository

import (
	"context"
	"errors"
	"movie_review/db/mongodb"
	"movie_review/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type IReviewRepository interface {
	AppendReview(ctx context.Context, movieId string, meta ReviewMeta, review model.Review) error
	GetMovieReviews(ctx context.Context, movieId string) (*model.MovieReviews, error)
}

type ReviewRepository struct {
	mongodb *mongo.Database
	now     func() time.Time
}

func NewReviewRepository(mongodb *mongo.Database) *ReviewRepository {
	return &ReviewRepository{mongodb: mongodb, now: time.Now}
}

//------------------------------------------
//------------------------------------------

// ReviewMeta is optional movie information the client sends along with a review.
type ReviewMeta struct {
	MovieDbId  *int64
	MovieTitle string
}

//------------------------------------------
//------------------------------------------

// AppendReview pushes review onto the movie's document, creating the
// document on the first review.
func (r *ReviewRepository) AppendReview(ctx context.Context, movieId string, meta ReviewMeta, review model.Review) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.mongodb.
		Collection(mongodb.ReviewsCollection).
		UpdateOne(ctx, bson.D{{Key: "_id", Value: movieId}}, appendReviewUpdate(meta, review, r.now()), opts)
	return err
}

func appendReviewUpdate(meta ReviewMeta, review model.Review, now time.Time) bson.D {
	set := bson.D{{Key: "updatedAt", Value: now.UTC()}}
	if meta.MovieDbId != nil {
		set = append(set, bson.E{Key: "movieDbId", Value: *meta.MovieDbId})
	}
	if meta.MovieTitle != "" {
		set = append(set, bson.E{Key: "movieTitle", Value: meta.MovieTitle})
	}

	return bson.D{
		{Key: "$push", Value: bson.D{{Key: "reviews", Value: review}}},
		{Key: "$set", Value: set},
	}
}

// GetMovieReviews returns an empty document when the movie has no reviews yet.
func (r *ReviewRepository) GetMovieReviews(ctx context.Context, movieId string) (*model.MovieReviews, error) {
	var result model.MovieReviews
	err := r.mongodb.
		Collection(mongodb.ReviewsCollection).
		FindOne(ctx, bson.D{{Key: "_id", Value: movieId}}).
		Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &model.MovieReviews{MovieId: movieId, Reviews: []model.Review{}}, nil
		}
		return nil, err
	}
	if result.Reviews == nil {
		result.Reviews = []model.Review{}
	}
	return &result, nil
}
