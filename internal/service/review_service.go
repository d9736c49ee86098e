package service

import (
	"context"
	"math"
	"movie_review/internal/repository"
	"movie_review/model"
	"movie_review/pkg/response"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

var unsafeMovieIdChars = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

type IReviewService interface {
	SubmitReview(ctx context.Context, input SubmitReviewInput) (*model.SubmitReviewRes, error)
	GetMovieReviews(ctx context.Context, movieId string) (*model.MovieReviewsRes, error)
}

type ReviewService struct {
	reviewRepo repository.IReviewRepository
	now        func() time.Time
}

func NewReviewService(reviewRepo repository.IReviewRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		now:        time.Now,
	}
}

//------------------------------------------
//------------------------------------------

type SubmitReviewInput struct {
	MovieId    string
	Rating     int
	Text       string
	MovieDbId  *int64
	MovieTitle string
}

// SanitizeMovieId strips everything outside [a-zA-Z0-9_-].
func SanitizeMovieId(movieId string) string {
	return unsafeMovieIdChars.ReplaceAllString(movieId, "")
}

// AverageRating is the mean rating rounded to one decimal. ok is false when
// there are no reviews.
func AverageRating(reviews []model.Review) (avg float64, ok bool) {
	if len(reviews) == 0 {
		return 0, false
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10, true
}

//------------------------------------------
//------------------------------------------

func (r *ReviewService) SubmitReview(ctx context.Context, input SubmitReviewInput) (*model.SubmitReviewRes, error) {
	movieId := SanitizeMovieId(input.MovieId)
	if movieId == "" || input.Rating == 0 {
		return nil, ErrInvalidMovieId
	}
	if input.Rating < MinRating || input.Rating > MaxRating {
		return nil, ErrInvalidRating
	}

	review := model.Review{
		Id:     uuid.NewString(),
		Rating: input.Rating,
		Text:   strings.TrimSpace(input.Text),
		Date:   r.now().UTC().Truncate(time.Millisecond),
	}
	meta := repository.ReviewMeta{
		MovieDbId:  input.MovieDbId,
		MovieTitle: strings.TrimSpace(input.MovieTitle),
	}
	if err := r.reviewRepo.AppendReview(ctx, movieId, meta, review); err != nil {
		return nil, storageError(response.ReviewWriteFailed, err)
	}

	return &model.SubmitReviewRes{
		Success: true,
		Saved:   review,
	}, nil
}

func (r *ReviewService) GetMovieReviews(ctx context.Context, movieId string) (*model.MovieReviewsRes, error) {
	movieId = SanitizeMovieId(movieId)
	if movieId == "" {
		return nil, ErrInvalidMovieId
	}

	doc, err := r.reviewRepo.GetMovieReviews(ctx, movieId)
	if err != nil {
		return nil, storageError(response.DbQueryFailed, err)
	}

	res := &model.MovieReviewsRes{
		Success: true,
		MovieId: movieId,
		Count:   len(doc.Reviews),
		Reviews: doc.Reviews,
	}
	if avg, ok := AverageRating(doc.Reviews); ok {
		res.Average = &avg
	}
	return res, nil
}
