package repository

import (
	"context"
	"errors"
	"movie_review/model"

	"gorm.io/gorm"
)

var ErrNoFieldsToUpdate = errors.New("no fields to update")

type IMovieRepository interface {
	ListMovies(ctx context.Context, limit int) ([]model.Movie, error)
	InsertMovie(ctx context.Context, movie *model.Movie) (int64, error)
	UpdateMovie(ctx context.Context, id int64, patch *model.MoviePatch) ([]string, error)
	DeleteMovie(ctx context.Context, id int64) (*string, error)
}

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

//------------------------------------------
//------------------------------------------

func (m *MovieRepository) ListMovies(ctx context.Context, limit int) ([]model.Movie, error) {
	result := make([]model.Movie, 0)
	err := m.db.WithContext(ctx).
		Model(&model.Movie{}).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&result).
		Error
	return result, err
}

func (m *MovieRepository) InsertMovie(ctx context.Context, movie *model.Movie) (int64, error) {
	err := m.db.WithContext(ctx).
		Omit("created_at").
		Create(movie).
		Error
	if err != nil {
		return 0, err
	}
	return movie.Id, nil
}

// UpdateMovie applies only the supplied patch fields and returns the names
// of the columns it changed.
func (m *MovieRepository) UpdateMovie(ctx context.Context, id int64, patch *model.MoviePatch) ([]string, error) {
	values, names := patch.Columns()
	if len(names) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	res := m.db.WithContext(ctx).
		Model(&model.Movie{}).
		Where("id = ?", id).
		UpdateColumns(values)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return names, nil
}

// DeleteMovie removes the row and returns the poster path it pointed at, if any.
func (m *MovieRepository) DeleteMovie(ctx context.Context, id int64) (*string, error) {
	var movie model.Movie
	err := m.db.WithContext(ctx).
		Model(&model.Movie{}).
		Select("id", "poster_path").
		Where("id = ?", id).
		Take(&movie).
		Error
	if err != nil {
		return nil, err
	}

	err = m.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Movie{}).
		Error
	if err != nil {
		return nil, err
	}
	return movie.PosterPath, nil
}
