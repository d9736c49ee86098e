package service

import (
	"errors"
	"movie_review/internal/repository"
)

var (
	ErrTitleRequired     = errors.New("title required")
	ErrIdRequired        = errors.New("id required")
	ErrNoFieldsToUpdate  = repository.ErrNoFieldsToUpdate
	ErrPosterTooLarge    = errors.New("poster too large")
	ErrUnsupportedImage  = errors.New("unsupported image type")
	ErrInvalidMovieId    = errors.New("movieId and rating required")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrUsernameRequired  = errors.New("username required")
	ErrPasswordRequired  = errors.New("password required for create/update")
	ErrInvalidUserAction = errors.New("action must be one of upsert, insert, delete")
)

// StorageError marks a failure of the backing store. Message is the generic
// text shown to clients, Err keeps the driver detail.
type StorageError struct {
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	return e.Message + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(message string, err error) error {
	return &StorageError{Message: message, Err: err}
}
