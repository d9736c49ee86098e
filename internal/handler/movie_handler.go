package handler

import (
	"encoding/json"
	"movie_review/internal/service"
	"movie_review/model"
	"movie_review/pkg/response"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type IMovieHandler interface {
	ListMovies(c *fiber.Ctx) error
	AddMovie(c *fiber.Ctx) error
	EditMovie(c *fiber.Ctx) error
	DeleteMovie(c *fiber.Ctx) error
	CatalogPage(c *fiber.Ctx) error
}

type MovieHandler struct {
	movieService service.IMovieService
}

func NewMovieHandler(movieService service.IMovieService) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
	}
}

//------------------------------------------
//------------------------------------------

type editMovieReq struct {
	Id          json.Number `json:"id" form:"id"`
	Title       *string     `json:"title" form:"title"`
	Year        json.Number `json:"year" form:"year"`
	Description *string     `json:"description" form:"description"`
}

type deleteMovieReq struct {
	Id json.Number `json:"id" form:"id"`
}

//------------------------------------------
//------------------------------------------

// ListMovies godoc
//
//	@Summary		List Movies
//	@Description	movies, newest first. limit outside [1, 1000] falls back to 100.
//	@Tags			Movie
//	@Param			limit	query		int	false	"limit"
//	@Success		200		{object}	model.MovieListRes
//	@Failure		500,503	{object}	response.ResponseErrorModel
//	@Router			/v1/movies [get]
func (m *MovieHandler) ListMovies(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", service.DefaultMovieListLimit)

	res, err := m.movieService.ListMovies(c.UserContext(), limit)
	if err != nil {
		return serviceError(c, err, response.ServerError)
	}
	return response.ResponseOKWithData(c, res)
}

// AddMovie godoc
//
//	@Summary		Add Movie
//	@Description	insert a movie with an optional poster image (jpeg, png or gif, up to 1.5 MiB).
//	@Tags			Movie
//	@Accept			multipart/form-data
//	@Param			title		formData	string	true	"title"
//	@Param			year		formData	int		false	"year"
//	@Param			description	formData	string	false	"description"
//	@Param			poster		formData	file	false	"poster image"
//	@Success		200			{object}	model.AddMovieRes
//	@Failure		400,500,503	{object}	response.ResponseErrorModel
//	@Router			/v1/movies/add [post]
func (m *MovieHandler) AddMovie(c *fiber.Ctx) error {
	year, err := parseOptionalInt(json.Number(c.FormValue("year")))
	if err != nil {
		year = nil
	}

	input := service.AddMovieInput{
		Title:       c.FormValue("title"),
		Year:        year,
		Description: c.FormValue("description"),
		Poster:      posterFromForm(c),
	}

	res, err := m.movieService.AddMovie(c.UserContext(), input)
	if err != nil {
		return serviceError(c, err, response.PosterSaveFailed)
	}
	return response.ResponseOKWithData(c, res)
}

// EditMovie godoc
//
//	@Summary		Edit Movie
//	@Description	partial update, only the supplied fields change. A poster can be replaced with a multipart body.
//	@Tags			Movie
//	@Accept			json,mpfd,x-www-form-urlencoded
//	@Param			id			formData	int		true	"movie id"
//	@Param			title		formData	string	false	"title"
//	@Param			year		formData	int		false	"year"
//	@Param			description	formData	string	false	"description"
//	@Param			poster		formData	file	false	"poster image"
//	@Success		200				{object}	model.EditMovieRes
//	@Failure		400,404,500,503	{object}	response.ResponseErrorModel
//	@Router			/v1/movies/edit [post]
func (m *MovieHandler) EditMovie(c *fiber.Ctx) error {
	var req editMovieReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}

	year, err := parseOptionalInt(req.Year)
	if err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}

	input := service.EditMovieInput{
		Id:          parseId(req.Id),
		Title:       req.Title,
		Year:        year,
		Description: req.Description,
		Poster:      posterFromForm(c),
	}

	res, err := m.movieService.EditMovie(c.UserContext(), input)
	if err != nil {
		return serviceError(c, err, response.PosterSaveFailed)
	}
	return response.ResponseOKWithData(c, res)
}

// DeleteMovie godoc
//
//	@Summary		Delete Movie
//	@Description	delete a movie row and its stored poster.
//	@Tags			Movie
//	@Accept			json,x-www-form-urlencoded
//	@Param			id				formData	int	true	"movie id"
//	@Success		200				{object}	model.DeleteMovieRes
//	@Failure		400,404,500,503	{object}	response.ResponseErrorModel
//	@Router			/v1/movies/delete [post]
func (m *MovieHandler) DeleteMovie(c *fiber.Ctx) error {
	var req deleteMovieReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}

	res, err := m.movieService.DeleteMovie(c.UserContext(), parseId(req.Id))
	if err != nil {
		return serviceError(c, err, response.ServerError)
	}
	return response.ResponseOKWithData(c, res)
}

//------------------------------------------
//------------------------------------------

// posterFromForm returns the "poster" part of a multipart body, or nil when
// the request has none. An empty file input counts as none.
func posterFromForm(c *fiber.Ctx) *service.PosterUpload {
	file, err := c.FormFile("poster")
	if err != nil || file == nil || (file.Size == 0 && file.Filename == "") {
		return nil
	}
	return service.PosterFromHeader(file)
}

// CatalogPage renders the movie grid, optionally filtered by the q query.
func (m *MovieHandler) CatalogPage(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q", ""))

	res, err := m.movieService.ListMovies(c.UserContext(), service.MaxListLimit)
	if err != nil {
		return serviceError(c, err, response.ServerError)
	}

	rows := res.Rows
	if query != "" {
		needle := strings.ToLower(query)
		rows = make([]model.Movie, 0, len(res.Rows))
		for _, movie := range res.Rows {
			if strings.Contains(strings.ToLower(movie.Title), needle) {
				rows = append(rows, movie)
			}
		}
	}

	return c.Render("index", fiber.Map{
		"Query":  query,
		"Movies": rows,
		"Count":  len(rows),
	})
}
