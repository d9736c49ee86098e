package handler

import (
	"encoding/json"
	"errors"
	"movie_review/db"
	"movie_review/internal/service"
	errorHandler "movie_review/pkg/error"
	"movie_review/pkg/response"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var validationErrors = []struct {
	err     error
	message string
}{
	{service.ErrTitleRequired, response.TitleRequired},
	{service.ErrIdRequired, response.IdRequired},
	{service.ErrNoFieldsToUpdate, response.NoFieldsToUpdate},
	{service.ErrPosterTooLarge, response.PosterTooLarge},
	{service.ErrUnsupportedImage, response.UnsupportedImage},
	{service.ErrInvalidMovieId, response.ReviewFieldsMissing},
	{service.ErrInvalidRating, response.InvalidRating},
	{service.ErrUsernameRequired, response.UsernameRequired},
	{service.ErrPasswordRequired, response.PasswordRequired},
	{service.ErrInvalidUserAction, response.InvalidAction},
}

// serviceError writes the error envelope for err. fallback is the message
// used for errors that are neither validation nor storage failures.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	for _, v := range validationErrors {
		if errors.Is(err, v.err) {
			return response.ResponseError(c, v.message, fiber.StatusBadRequest)
		}
	}
	if errors.Is(err, service.ErrMovieNotFound) {
		return response.ResponseError(c, response.MovieNotFound, fiber.StatusNotFound)
	}

	var storageErr *service.StorageError
	if errors.As(err, &storageErr) {
		if db.IsConnectionNotAcceptingError(storageErr.Err) {
			return response.ResponseErrorWithDetails(c, response.DbConnectionFailed, storageErr.Err.Error(), fiber.StatusServiceUnavailable)
		}
		errorHandler.SaveError(storageErr.Message, storageErr.Err)
		return response.ResponseErrorWithDetails(c, storageErr.Message, storageErr.Err.Error(), fiber.StatusInternalServerError)
	}

	errorHandler.SaveError(fallback, err)
	return response.ResponseErrorWithDetails(c, fallback, err.Error(), fiber.StatusInternalServerError)
}

//------------------------------------------
//------------------------------------------

// parseOptionalInt reads a number sent either as a JSON number or as a
// string. Empty input means "not supplied".
func parseOptionalInt(value json.Number) (*int, error) {
	s := strings.TrimSpace(value.String())
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseOptionalInt64(value json.Number) (*int64, error) {
	s := strings.TrimSpace(value.String())
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseId(value json.Number) int64 {
	id, err := parseOptionalInt64(value)
	if err != nil || id == nil {
		return 0
	}
	return *id
}
