package service

import (
	"context"
	"errors"
	"movie_review/internal/repository"
	"movie_review/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewRepository struct {
	docs      map[string]*model.MovieReviews
	appendErr error
}

func newFakeReviewRepository() *fakeReviewRepository {
	return &fakeReviewRepository{docs: make(map[string]*model.MovieReviews)}
}

func (f *fakeReviewRepository) AppendReview(_ context.Context, movieId string, meta repository.ReviewMeta, review model.Review) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	doc, ok := f.docs[movieId]
	if !ok {
		doc = &model.MovieReviews{MovieId: movieId}
		f.docs[movieId] = doc
	}
	doc.Reviews = append(doc.Reviews, review)
	if meta.MovieDbId != nil {
		doc.MovieDbId = meta.MovieDbId
	}
	if meta.MovieTitle != "" {
		doc.MovieTitle = meta.MovieTitle
	}
	return nil
}

func (f *fakeReviewRepository) GetMovieReviews(_ context.Context, movieId string) (*model.MovieReviews, error) {
	if doc, ok := f.docs[movieId]; ok {
		return doc, nil
	}
	return &model.MovieReviews{MovieId: movieId, Reviews: []model.Review{}}, nil
}

func newTestReviewService() (*ReviewService, *fakeReviewRepository) {
	repo := newFakeReviewRepository()
	svc := NewReviewService(repo)
	svc.now = func() time.Time { return time.Date(2025, 5, 1, 12, 0, 0, 123456789, time.UTC) }
	return svc, repo
}

func TestSanitizeMovieId(t *testing.T) {
	assert.Equal(t, "u17_ab-C", SanitizeMovieId("u17_ab-C"))
	assert.Equal(t, "m12", SanitizeMovieId(" m1/2 "))
	assert.Equal(t, "etcpasswd", SanitizeMovieId("../etc/passwd"))
	assert.Equal(t, "", SanitizeMovieId("?!"))
}

func TestSubmitReview(t *testing.T) {
	svc, repo := newTestReviewService()
	dbId := int64(8)

	res, err := svc.SubmitReview(context.Background(), SubmitReviewInput{
		MovieId: "u1/x", Rating: 4, Text: "  fine  ", MovieDbId: &dbId, MovieTitle: " Title ",
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 4, res.Saved.Rating)
	assert.Equal(t, "fine", res.Saved.Text)
	assert.Equal(t, time.Date(2025, 5, 1, 12, 0, 0, 123000000, time.UTC), res.Saved.Date)
	assert.NotEmpty(t, res.Saved.Id)

	doc := repo.docs["u1x"]
	require.NotNil(t, doc)
	assert.Equal(t, int64(8), *doc.MovieDbId)
	assert.Equal(t, "Title", doc.MovieTitle)
}

func TestSubmitReview_Validation(t *testing.T) {
	svc, repo := newTestReviewService()

	tests := []struct {
		name  string
		input SubmitReviewInput
		err   error
	}{
		{"missing movie", SubmitReviewInput{Rating: 3}, ErrInvalidMovieId},
		{"only unsafe chars", SubmitReviewInput{MovieId: "//", Rating: 3}, ErrInvalidMovieId},
		{"missing rating", SubmitReviewInput{MovieId: "u1"}, ErrInvalidMovieId},
		{"rating too high", SubmitReviewInput{MovieId: "u1", Rating: 6}, ErrInvalidRating},
		{"rating negative", SubmitReviewInput{MovieId: "u1", Rating: -2}, ErrInvalidRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitReview(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.err)
		})
	}
	assert.Empty(t, repo.docs)
}

func TestSubmitReview_StorageFailure(t *testing.T) {
	svc, repo := newTestReviewService()
	repo.appendErr = errors.New("no reachable servers")

	_, err := svc.SubmitReview(context.Background(), SubmitReviewInput{MovieId: "u1", Rating: 2})

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "Could not write reviews file", storageErr.Message)
}

func TestGetMovieReviews(t *testing.T) {
	svc, _ := newTestReviewService()
	ctx := context.Background()

	res, err := svc.GetMovieReviews(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Nil(t, res.Average)
	assert.NotNil(t, res.Reviews)

	for _, rating := range []int{3, 4, 5} {
		_, err = svc.SubmitReview(ctx, SubmitReviewInput{MovieId: "u1", Rating: rating})
		require.NoError(t, err)
	}

	res, err = svc.GetMovieReviews(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	require.NotNil(t, res.Average)
	assert.Equal(t, 4.0, *res.Average)
}

func TestAverageRating(t *testing.T) {
	avg, ok := AverageRating([]model.Review{{Rating: 3}, {Rating: 4}, {Rating: 5}})
	assert.True(t, ok)
	assert.Equal(t, 4.0, avg)

	avg, ok = AverageRating([]model.Review{{Rating: 1}, {Rating: 2}})
	assert.True(t, ok)
	assert.Equal(t, 1.5, avg)

	avg, ok = AverageRating([]model.Review{{Rating: 5}, {Rating: 5}, {Rating: 4}})
	assert.True(t, ok)
	assert.Equal(t, 4.7, avg)

	_, ok = AverageRating(nil)
	assert.False(t, ok)
}
