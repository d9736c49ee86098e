package service

import (
	"context"
	"errors"
	"fmt"
	"movie_review/internal/repository"
	"movie_review/model"
	errorHandler "movie_review/pkg/error"
	"movie_review/pkg/response"
	"strings"

	"gorm.io/gorm"
)

var ErrMovieNotFound = errors.New("movie not found")

const (
	DefaultMovieListLimit = 100
	MaxListLimit          = 1000
)

type IMovieService interface {
	ListMovies(ctx context.Context, limit int) (*model.MovieListRes, error)
	AddMovie(ctx context.Context, input AddMovieInput) (*model.AddMovieRes, error)
	EditMovie(ctx context.Context, input EditMovieInput) (*model.EditMovieRes, error)
	DeleteMovie(ctx context.Context, id int64) (*model.DeleteMovieRes, error)
}

type MovieService struct {
	movieRepo     repository.IMovieRepository
	posterService IPosterService
	cache         IMovieListCache
}

func NewMovieService(movieRepo repository.IMovieRepository, posterService IPosterService, cache IMovieListCache) *MovieService {
	if cache == nil {
		cache = NoopMovieListCache{}
	}
	return &MovieService{
		movieRepo:     movieRepo,
		posterService: posterService,
		cache:         cache,
	}
}

//------------------------------------------
//------------------------------------------

type AddMovieInput struct {
	Title       string
	Year        *int
	Description string
	Poster      *PosterUpload
}

type EditMovieInput struct {
	Id          int64
	Title       *string
	Year        *int
	Description *string
	Poster      *PosterUpload
}

// ClampLimit maps anything outside [1, MaxListLimit] to defaultLimit.
func ClampLimit(limit int, defaultLimit int) int {
	if limit > 0 && limit <= MaxListLimit {
		return limit
	}
	return defaultLimit
}

//------------------------------------------
//------------------------------------------

func (m *MovieService) ListMovies(ctx context.Context, limit int) (*model.MovieListRes, error) {
	limit = ClampLimit(limit, DefaultMovieListLimit)

	movies, ok := m.cache.GetMovieList(ctx, limit)
	if !ok {
		var err error
		movies, err = m.movieRepo.ListMovies(ctx, limit)
		if err != nil {
			return nil, storageError(response.DbQueryFailed, err)
		}
		m.cache.SetMovieList(ctx, limit, movies)
	}

	return &model.MovieListRes{
		Success: true,
		Count:   len(movies),
		Rows:    movies,
	}, nil
}

func (m *MovieService) AddMovie(ctx context.Context, input AddMovieInput) (*model.AddMovieRes, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	var posterPath *string
	if input.Poster != nil {
		path, err := m.posterService.SavePoster(input.Poster, title)
		if err != nil {
			return nil, err
		}
		posterPath = &path
	}

	movie := &model.Movie{
		Title:       title,
		Year:        nonZeroYear(input.Year),
		PosterPath:  posterPath,
		Description: strings.TrimSpace(input.Description),
	}
	id, err := m.movieRepo.InsertMovie(ctx, movie)
	if err != nil {
		m.discardPoster(posterPath)
		return nil, storageError(response.DbInsertFailed, err)
	}
	m.cache.InvalidateMovieList(ctx)

	return &model.AddMovieRes{
		Success: true,
		Id:      id,
		Title:   title,
		Poster:  posterPath,
	}, nil
}

func (m *MovieService) EditMovie(ctx context.Context, input EditMovieInput) (*model.EditMovieRes, error) {
	if input.Id <= 0 {
		return nil, ErrIdRequired
	}

	patch := &model.MoviePatch{
		Year: input.Year,
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		patch.Title = &title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		patch.Description = &description
	}
	if patch.IsEmpty() && input.Poster == nil {
		return nil, ErrNoFieldsToUpdate
	}

	if input.Poster != nil {
		title := ""
		if patch.Title != nil {
			title = *patch.Title
		}
		path, err := m.posterService.SavePoster(input.Poster, title)
		if err != nil {
			return nil, err
		}
		patch.PosterPath = &path
	}

	updated, err := m.movieRepo.UpdateMovie(ctx, input.Id, patch)
	if err != nil {
		m.discardPoster(patch.PosterPath)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		if errors.Is(err, ErrNoFieldsToUpdate) {
			return nil, err
		}
		return nil, storageError(response.DbUpdateFailed, err)
	}
	m.cache.InvalidateMovieList(ctx)

	return &model.EditMovieRes{
		Success:       true,
		Id:            input.Id,
		UpdatedFields: updated,
		Poster:        patch.PosterPath,
	}, nil
}

func (m *MovieService) DeleteMovie(ctx context.Context, id int64) (*model.DeleteMovieRes, error) {
	if id <= 0 {
		return nil, ErrIdRequired
	}

	posterPath, err := m.movieRepo.DeleteMovie(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, storageError(response.DbDeleteFailed, err)
	}
	m.cache.InvalidateMovieList(ctx)
	m.discardPoster(posterPath)

	return &model.DeleteMovieRes{
		Success:   true,
		DeletedId: id,
	}, nil
}

//------------------------------------------
//------------------------------------------

func (m *MovieService) discardPoster(posterPath *string) {
	if posterPath == nil {
		return
	}
	if err := m.posterService.RemovePoster(*posterPath); err != nil {
		errorMessage := fmt.Sprintf("Error on removing poster file: %s", err)
		errorHandler.SaveError(errorMessage, err)
	}
}

func nonZeroYear(year *int) *int {
	if year == nil || *year == 0 {
		return nil
	}
	return year
}
