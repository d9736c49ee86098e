package repository

import (
	"context"
	"errors"
	"movie_review/model"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var movieColumns = []string{"id", "title", "year", "poster_path", "description", "created_at"}

func TestListMovies_NewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	newer := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "movies" ORDER BY created_at DESC,id DESC LIMIT`)).
		WillReturnRows(sqlmock.NewRows(movieColumns).
			AddRow(2, "Newer", nil, nil, "", newer).
			AddRow(1, "Older", 1999, "uploads/posters/1-Older.png", "d", older))

	movies, err := repo.ListMovies(context.Background(), 100)

	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, int64(2), movies[0].Id)
	assert.Nil(t, movies[0].Year)
	assert.Nil(t, movies[0].PosterPath)
	assert.Equal(t, "Older", movies[1].Title)
	require.NotNil(t, movies[1].Year)
	assert.Equal(t, 1999, *movies[1].Year)
	require.NotNil(t, movies[1].PosterPath)
	assert.Equal(t, "uploads/posters/1-Older.png", *movies[1].PosterPath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMovies_EmptyIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "movies"`)).
		WillReturnRows(sqlmock.NewRows(movieColumns))

	movies, err := repo.ListMovies(context.Background(), 10)

	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}

func TestInsertMovie(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	year := 2021
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "movies" ("title","year","poster_path","description") VALUES`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := repo.InsertMovie(context.Background(), &model.Movie{Title: "Dune", Year: &year, Description: "sand"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMovie_OnlySuppliedColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	title := "New"
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "movies" SET "title"=$1 WHERE id = $2`)).
		WithArgs("New", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	names, err := repo.UpdateMovie(context.Background(), 7, &model.MoviePatch{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, []string{"title"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMovie_UnknownIdIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	description := "d"
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "movies" SET "description"=$1 WHERE id = $2`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateMovie(context.Background(), 404, &model.MoviePatch{Description: &description})

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMovie_EmptyPatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	_, err := repo.UpdateMovie(context.Background(), 1, &model.MoviePatch{})

	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMovie_StorageError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	title := "x"
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "movies"`)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.UpdateMovie(context.Background(), 1, &model.MoviePatch{Title: &title})

	assert.EqualError(t, err, "connection reset")
}

func TestDeleteMovie_ReturnsPosterPath(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","poster_path" FROM "movies" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "poster_path"}).AddRow(3, "uploads/posters/3-x.png"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "movies" WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	poster, err := repo.DeleteMovie(context.Background(), 3)

	require.NoError(t, err)
	require.NotNil(t, poster)
	assert.Equal(t, "uploads/posters/3-x.png", *poster)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMovie_UnknownIdDeletesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","poster_path" FROM "movies" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "poster_path"}))

	poster, err := repo.DeleteMovie(context.Background(), 9)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, poster)
	assert.NoError(t, mock.ExpectationsWereMet())
}
