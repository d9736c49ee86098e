package handler

import (
	"encoding/json"
	"movie_review/internal/service"
	"movie_review/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type IReviewHandler interface {
	SubmitReview(c *fiber.Ctx) error
	GetMovieReviews(c *fiber.Ctx) error
}

type ReviewHandler struct {
	reviewService service.IReviewService
}

func NewReviewHandler(reviewService service.IReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

//------------------------------------------
//------------------------------------------

type submitReviewReq struct {
	MovieId    string      `json:"movieId" form:"movieId"`
	Rating     json.Number `json:"rating" form:"rating"`
	Text       string      `json:"text" form:"text"`
	MovieDbId  json.Number `json:"movieDbId" form:"movieDbId"`
	MovieTitle string      `json:"movieTitle" form:"movieTitle"`
}

//------------------------------------------
//------------------------------------------

// SubmitReview godoc
//
//	@Summary		Submit Review
//	@Description	append a review to the movie's review log. movieId is reduced to [A-Za-z0-9_-].
//	@Tags			Review
//	@Accept			json,x-www-form-urlencoded
//	@Param			movieId		formData	string	true	"client movie id"
//	@Param			rating		formData	int		true	"rating, 1 to 5"
//	@Param			text		formData	string	false	"review text"
//	@Param			movieDbId	formData	int		false	"server movie id"
//	@Param			movieTitle	formData	string	false	"movie title"
//	@Success		200			{object}	model.SubmitReviewRes
//	@Failure		400,500,503	{object}	response.ResponseErrorModel
//	@Router			/v1/reviews/submit [post]
func (r *ReviewHandler) SubmitReview(c *fiber.Ctx) error {
	var req submitReviewReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}

	rating, err := parseOptionalInt(req.Rating)
	if err != nil {
		return response.ResponseError(c, response.InvalidRating, fiber.StatusBadRequest)
	}
	movieDbId, err := parseOptionalInt64(req.MovieDbId)
	if err != nil {
		movieDbId = nil
	}

	input := service.SubmitReviewInput{
		MovieId:    req.MovieId,
		Text:       req.Text,
		MovieDbId:  movieDbId,
		MovieTitle: req.MovieTitle,
	}
	if rating != nil {
		input.Rating = *rating
	}

	res, err := r.reviewService.SubmitReview(c.UserContext(), input)
	if err != nil {
		return serviceError(c, err, response.ReviewWriteFailed)
	}
	return response.ResponseOKWithData(c, res)
}

// GetMovieReviews godoc
//
//	@Summary		Movie Reviews
//	@Description	every review of a movie with the average rating, null when there are none.
//	@Tags			Review
//	@Param			movieId		path		string	true	"client movie id"
//	@Success		200			{object}	model.MovieReviewsRes
//	@Failure		400,500,503	{object}	response.ResponseErrorModel
//	@Router			/v1/reviews/:movieId [get]
func (r *ReviewHandler) GetMovieReviews(c *fiber.Ctx) error {
	movieId := c.Params("movieId", "")
	if movieId == "" || movieId == ":movieId" {
		return response.ResponseError(c, response.ReviewFieldsMissing, fiber.StatusBadRequest)
	}

	res, err := r.reviewService.GetMovieReviews(c.UserContext(), movieId)
	if err != nil {
		return serviceError(c, err, response.ServerError)
	}
	return response.ResponseOKWithData(c, res)
}
