package model

import "time"

type Review struct {
	Id     string    `bson:"id" json:"-"`
	Rating int       `bson:"rating" json:"rating"`
	Text   string    `bson:"text" json:"text"`
	Date   time.Time `bson:"date" json:"date"`
}

// MovieReviews is the keyed document holding every review of one movie.
type MovieReviews struct {
	MovieId    string    `bson:"_id" json:"movieId"`
	MovieDbId  *int64    `bson:"movieDbId,omitempty" json:"movieDbId,omitempty"`
	MovieTitle string    `bson:"movieTitle,omitempty" json:"movieTitle,omitempty"`
	Reviews    []Review  `bson:"reviews" json:"reviews"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

//---------------------------------------
//---------------------------------------

type SubmitReviewRes struct {
	Success bool   `json:"success"`
	Saved   Review `json:"saved"`
}

type MovieReviewsRes struct {
	Success bool     `json:"success"`
	MovieId string   `json:"movieId"`
	Count   int      `json:"count"`
	Average *float64 `json:"average"`
	Reviews []Review `json:"reviews"`
}
