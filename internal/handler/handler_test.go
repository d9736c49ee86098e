package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"movie_review/internal/service"
	"movie_review/model"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMovieService struct {
	listLimit int
	addInput  service.AddMovieInput
	editInput service.EditMovieInput
	deleteId  int64
	err       error
	rows      []model.Movie
}

func (f *fakeMovieService) ListMovies(_ context.Context, limit int) (*model.MovieListRes, error) {
	f.listLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return &model.MovieListRes{Success: true, Count: len(f.rows), Rows: f.rows}, nil
}

func (f *fakeMovieService) AddMovie(_ context.Context, input service.AddMovieInput) (*model.AddMovieRes, error) {
	f.addInput = input
	if f.err != nil {
		return nil, f.err
	}
	return &model.AddMovieRes{Success: true, Id: 1, Title: input.Title}, nil
}

func (f *fakeMovieService) EditMovie(_ context.Context, input service.EditMovieInput) (*model.EditMovieRes, error) {
	f.editInput = input
	if f.err != nil {
		return nil, f.err
	}
	return &model.EditMovieRes{Success: true, Id: input.Id, UpdatedFields: []string{"title"}}, nil
}

func (f *fakeMovieService) DeleteMovie(_ context.Context, id int64) (*model.DeleteMovieRes, error) {
	f.deleteId = id
	if f.err != nil {
		return nil, f.err
	}
	return &model.DeleteMovieRes{Success: true, DeletedId: id}, nil
}

type fakeReviewService struct {
	input service.SubmitReviewInput
	err   error
}

func (f *fakeReviewService) SubmitReview(_ context.Context, input service.SubmitReviewInput) (*model.SubmitReviewRes, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &model.SubmitReviewRes{Success: true, Saved: model.Review{Id: "hidden", Rating: input.Rating, Text: input.Text}}, nil
}

func (f *fakeReviewService) GetMovieReviews(_ context.Context, movieId string) (*model.MovieReviewsRes, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.MovieReviewsRes{Success: true, MovieId: movieId, Reviews: []model.Review{}}, nil
}

type fakeUserService struct {
	input service.SaveUserInput
	err   error
}

func (f *fakeUserService) SaveUser(_ context.Context, input service.SaveUserInput) (interface{}, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &model.UserSaveRes{Success: true, Action: "created", Id: 3, Username: input.Username}, nil
}

func (f *fakeUserService) ListUsers(_ context.Context, limit int) (*model.UserListRes, error) {
	return &model.UserListRes{Success: true, Table: "users", Count: limit, Rows: []model.User{}}, nil
}

//------------------------------------------
//------------------------------------------

func newTestApp(movies service.IMovieService, reviews service.IReviewService, users service.IUserService) *fiber.App {
	app := fiber.New()
	movieHandler := NewMovieHandler(movies)
	reviewHandler := NewReviewHandler(reviews)
	userHandler := NewUserHandler(users)

	app.Get("/v1/movies", movieHandler.ListMovies)
	app.Post("/v1/movies/add", movieHandler.AddMovie)
	app.Post("/v1/movies/edit", movieHandler.EditMovie)
	app.Post("/v1/movies/delete", movieHandler.DeleteMovie)
	app.Post("/v1/reviews/submit", reviewHandler.SubmitReview)
	app.Get("/v1/reviews/:movieId", reviewHandler.GetMovieReviews)
	app.Post("/v1/users", userHandler.SaveUser)
	app.Get("/v1/users", userHandler.ListUsers)
	return app
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

func jsonRequest(method string, target string, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, target string, fields map[string]string, poster []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if poster != nil {
		part, err := w.CreateFormFile("poster", "poster.png")
		require.NoError(t, err)
		_, err = part.Write(poster)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

//------------------------------------------
//------------------------------------------

func TestListMovies(t *testing.T) {
	movies := &fakeMovieService{rows: []model.Movie{{Id: 2, Title: "B"}, {Id: 1, Title: "A"}}}
	app := newTestApp(movies, &fakeReviewService{}, &fakeUserService{})

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/v1/movies?limit=5", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, 5, movies.listLimit)
	rows := body["rows"].([]interface{})
	first := rows[0].(map[string]interface{})
	assert.Equal(t, float64(2), first["id"])
	assert.Contains(t, first, "poster_path")
	assert.Contains(t, first, "created_at")
}

func TestListMovies_StorageFailure(t *testing.T) {
	movies := &fakeMovieService{err: &service.StorageError{Message: "prepare failed", Err: errors.New("relation \"movies\" does not exist")}}
	app := newTestApp(movies, &fakeReviewService{}, &fakeUserService{})

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/v1/movies", nil))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "prepare failed", body["error"])
	assert.Equal(t, "relation \"movies\" does not exist", body["details"])
}

func TestListMovies_DatabaseStarting(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "57P03", Message: "the database system is starting up"}
	movies := &fakeMovieService{err: &service.StorageError{Message: "prepare failed", Err: pgErr}}
	app := newTestApp(movies, &fakeReviewService{}, &fakeUserService{})

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/v1/movies", nil))

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "DB connection failed", body["error"])
}

func TestAddMovie_Multipart(t *testing.T) {
	movies := &fakeMovieService{}
	app := newTestApp(movies, &fakeReviewService{}, &fakeUserService{})

	req := multipartRequest(t, "/v1/movies/add", map[string]string{
		"title": "Dune", "year": "2021", "description": "sand",
	}, []byte("\x89PNG\r\n\x1a\n"))
	status, body := doRequest(t, app, req)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Dune", body["title"])
	assert.Equal(t, "Dune", movies.addInput.Title)
	require.NotNil(t, movies.addInput.Year)
	assert.Equal(t, 2021, *movies.addInput.Year)
	assert.Equal(t, "sand", movies.addInput.Description)
	require.NotNil(t, movies.addInput.Poster)
	assert.Equal(t, int64(8), movies.addInput.Poster.Size)
}

func TestAddMovie_BadYearIgnoredNoPoster(t *testing.T) {
	movies := &fakeMovieService{}
	app := newTestApp(movies, &fakeReviewService{}, &fakeUserService{})

	req := multipartRequest(t, "/v1/movies/add", map[string]string{"title": "x", "year": "soon"}, nil)
	status, _ := doRequest(t, app, req)

	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, movies.addInput.Year)
	assert.Nil(t, movies.addInput.Poster)
}

func TestAddMovie_ValidationErrors(t *testing.T) {
	tests := []struct {
		err     error
		message string
	}{
		{service.ErrTitleRequired, "title required"},
		{service.ErrPosterTooLarge, "poster too large"},
		{service.ErrUnsupportedImage, "unsupported image type"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			app := newTestApp(&fakeMovieService{err: tt.err}, &fakeReviewService{}, &fakeUserService{})
			status, body := doRequest(t, app, multipartRequest(t, "/v1/movies/add", map[string]string{"title": ""}, nil))
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestEditMovie_JSON(t *testing.T) {
	movies := &fakeMovieService{}
	app := newTestApp(movies, &fakeReviewService{}, &fakeUserService{})

	status, body := doRequest(t, app, jsonRequest(http.MethodPost, "/v1/movies/edit", `{"id":"7","title":"New","year":2002}`))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{"title"}, body["updated_fields"])
	assert.Equal(t, int64(7), movies.editInput.Id)
	require.NotNil(t, movies.editInput.Title)
	assert.Equal(t, "New", *movies.editInput.Title)
	require.NotNil(t, movies.editInput.Year)
	assert.Equal(t, 2002, *movies.editInput.Year)
	assert.Nil(t, movies.editInput.Description)
	assert.Nil(t, movies.editInput.Poster)
}

func TestEditMovie_Form(t *testing.T) {
	movies := &fakeMovieService{}
	app := newTestApp(movies, &fakeReviewService{}, &fakeUserService{})

	status, _ := doRequest(t, app, formRequest("/v1/movies/edit", url.Values{"id": {"3"}, "description": {"d"}}))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(3), movies.editInput.Id)
	require.NotNil(t, movies.editInput.Description)
	assert.Equal(t, "d", *movies.editInput.Description)
	assert.Nil(t, movies.editInput.Title)
}

func TestEditMovie_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no fields", service.ErrNoFieldsToUpdate, http.StatusBadRequest},
		{"not found", service.ErrMovieNotFound, http.StatusNotFound},
		{"storage", &service.StorageError{Message: "execute failed", Err: errors.New("x")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&fakeMovieService{err: tt.err}, &fakeReviewService{}, &fakeUserService{})
			status, body := doRequest(t, app, jsonRequest(http.MethodPost, "/v1/movies/edit", `{"id":1}`))
			assert.Equal(t, tt.status, status)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestEditMovie_MalformedBody(t *testing.T) {
	movies := &fakeMovieService{}
	app := newTestApp(movies, &fakeReviewService{}, &fakeUserService{})

	status, body := doRequest(t, app, jsonRequest(http.MethodPost, "/v1/movies/edit", `{"id":`))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Incorrect request body", body["error"])
	assert.Zero(t, movies.editInput.Id)
}

func TestDeleteMovie(t *testing.T) {
	movies := &fakeMovieService{}
	app := newTestApp(movies, &fakeReviewService{}, &fakeUserService{})

	status, body := doRequest(t, app, jsonRequest(http.MethodPost, "/v1/movies/delete", `{"id":12}`))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(12), body["deleted_id"])
	assert.Equal(t, int64(12), movies.deleteId)
}

func TestSubmitReview(t *testing.T) {
	reviews := &fakeReviewService{}
	app := newTestApp(&fakeMovieService{}, reviews, &fakeUserService{})

	status, body := doRequest(t, app, jsonRequest(http.MethodPost, "/v1/reviews/submit",
		`{"movieId":"u1","rating":"4","text":"ok","movieDbId":9,"movieTitle":"T"}`))

	assert.Equal(t, http.StatusOK, status)
	saved := body["saved"].(map[string]interface{})
	assert.Equal(t, float64(4), saved["rating"])
	assert.NotContains(t, saved, "id")
	assert.Equal(t, 4, reviews.input.Rating)
	require.NotNil(t, reviews.input.MovieDbId)
	assert.Equal(t, int64(9), *reviews.input.MovieDbId)
	assert.Equal(t, "T", reviews.input.MovieTitle)
}

func TestSubmitReview_Errors(t *testing.T) {
	app := newTestApp(&fakeMovieService{}, &fakeReviewService{}, &fakeUserService{})
	status, body := doRequest(t, app, formRequest("/v1/reviews/submit", url.Values{"movieId": {"u1"}, "rating": {"great"}}))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "rating must be between 1 and 5", body["error"])

	app = newTestApp(&fakeMovieService{}, &fakeReviewService{err: service.ErrInvalidMovieId}, &fakeUserService{})
	status, body = doRequest(t, app, formRequest("/v1/reviews/submit", url.Values{"rating": {"3"}}))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "movieId and rating required", body["error"])
}

func TestGetMovieReviews(t *testing.T) {
	app := newTestApp(&fakeMovieService{}, &fakeReviewService{}, &fakeUserService{})

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/v1/reviews/um1", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "um1", body["movieId"])
	assert.Nil(t, body["average"])
	assert.Contains(t, body, "average")
}

func TestSaveUser(t *testing.T) {
	users := &fakeUserService{}
	app := newTestApp(&fakeMovieService{}, &fakeReviewService{}, users)

	status, body := doRequest(t, app, jsonRequest(http.MethodPost, "/v1/users", `{"username":"a","password":"p","action":"insert"}`))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "created", body["action"])
	assert.Equal(t, service.SaveUserInput{Username: "a", Password: "p", Action: "insert"}, users.input)
}

func TestSaveUser_Validation(t *testing.T) {
	app := newTestApp(&fakeMovieService{}, &fakeReviewService{}, &fakeUserService{err: service.ErrPasswordRequired})

	status, body := doRequest(t, app, formRequest("/v1/users", url.Values{"username": {"a"}}))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "password required for create/update", body["error"])
}

func TestListUsers(t *testing.T) {
	app := newTestApp(&fakeMovieService{}, &fakeReviewService{}, &fakeUserService{})

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/v1/users", nil))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(service.DefaultUserListLimit), body["count"])
	assert.Equal(t, "users", body["table"])
}
