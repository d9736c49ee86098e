package catalog

import (
	"math"
	"strings"
	"time"
)

const (
	UserPrefix   = "u"
	ServerPrefix = "m"

	MaxPosterBytes    = 1536 * 1024
	PlaceholderPoster = "https://via.placeholder.com/300x450?text=No+Image"
	ServerPlaceholder = "./placeholder.jpg"

	MinRating = 1
	MaxRating = 5
)

// Movie is one entry of the runtime list. Id is "u..." for movies the user
// owns locally and "m<dbId>" for rows fetched from the server.
type Movie struct {
	Id          string `json:"id"`
	DbId        *int64 `json:"dbId,omitempty"`
	Title       string `json:"title"`
	Year        int    `json:"year,omitempty"`
	Poster      string `json:"poster"`
	Description string `json:"description"`
}

func (m Movie) IsUserOwned() bool {
	return IsUserId(m.Id)
}

type Review struct {
	Rating int       `json:"rating"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
}

func IsUserId(id string) bool {
	return strings.HasPrefix(id, UserPrefix)
}

// DefaultMovies seeds an empty user movie set.
var DefaultMovies = []Movie{
	{Id: "m1", Title: "DevAstra : The Unheard Battle of Parshurama", Year: 2023, Poster: "./The-Conjuring-Last-Rites-English.jpg", Description: "A chilling supernatural horror."},
	{Id: "m2", Title: "DevAstra : Discovery of The Immortal", Year: 2024, Poster: "./Nobody-2-English.jpg", Description: "High-octane action sequel."},
	{Id: "m3", Title: "DevAstra : Unleash The Fire", Year: 2023, Poster: "./The-Fantastic-Four-First-Steps-English.jpg", Description: "Sci-fi exploration at its best."},
	{Id: "m4", Title: "DevAstra : The Dhoomaketu Effect", Year: 2020, Poster: "./F1-The-Movie-English.jpg", Description: "A mystery that keeps you guessing."},
}

// seedMovies returns DefaultMovies moved into the user namespace.
func seedMovies() []Movie {
	seed := make([]Movie, 0, len(DefaultMovies))
	for _, m := range DefaultMovies {
		if !IsUserId(m.Id) {
			m.Id = UserPrefix + m.Id
		}
		seed = append(seed, m)
	}
	return seed
}

// AverageRating is the mean rating rounded to one decimal. ok is false for
// an empty list.
func AverageRating(reviews []Review) (avg float64, ok bool) {
	if len(reviews) == 0 {
		return 0, false
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10, true
}
