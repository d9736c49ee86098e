package catalog

import (
	"context"
	"encoding/base64"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrTitleRequired   = errors.New("please enter a movie title")
	ErrPosterTooLarge  = errors.New("poster file is too large, max 1.5 MB")
	ErrNotUserOwned    = errors.New("only user-added movies can be dropped")
	ErrMovieNotFound   = errors.New("movie not found")
	ErrDropCancelled   = errors.New("drop cancelled")
	ErrMovieIdRequired = errors.New("movie id required")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// Outcome tells how far a write got.
type Outcome int

const (
	LocalOnly Outcome = iota
	Synced
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Synced:
		return "synced"
	case Rejected:
		return "rejected"
	default:
		return "saved locally"
	}
}

type ChangeKind string

const (
	MoviesMerged ChangeKind = "merged"
	MovieAdded   ChangeKind = "added"
	MovieUpdated ChangeKind = "updated"
	MovieDropped ChangeKind = "dropped"
	ReviewAdded  ChangeKind = "review"
)

type Change struct {
	Kind    ChangeKind
	MovieId string
}

type Listener func(Change)

//------------------------------------------
//------------------------------------------

// Catalog owns the runtime movie list built from the local store and the
// server. Every mutation is written locally first, the remote call is best
// effort.
type Catalog struct {
	mu        sync.Mutex
	movies    []Movie
	store     Store
	remote    Remote
	log       *zap.Logger
	now       func() time.Time
	randIntN  func(int) int
	listeners []Listener
}

type Option func(*Catalog)

func WithLogger(log *zap.Logger) Option {
	return func(c *Catalog) {
		if log != nil {
			c.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

func WithRand(intN func(int) int) Option {
	return func(c *Catalog) { c.randIntN = intN }
}

// New builds a catalog. remote may be nil for an offline catalog.
func New(store Store, remote Remote, opts ...Option) *Catalog {
	c := &Catalog{
		store:    store,
		remote:   remote,
		log:      zap.NewNop(),
		now:      time.Now,
		randIntN: rand.Intn,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *Catalog) notify(change Change) {
	c.mu.Lock()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()
	for _, l := range listeners {
		l(change)
	}
}

//------------------------------------------
//------------------------------------------

// Load merges the local user movies and, when withServer is set, the
// server rows.
func (c *Catalog) Load(ctx context.Context, withServer bool) error {
	if err := c.MergeUserMovies(); err != nil {
		return err
	}
	if withServer {
		c.MergeServer(ctx)
	}
	return nil
}

// MergeUserMovies seeds an empty local set with DefaultMovies and unions
// the local set into the runtime list. Calling it again changes nothing.
func (c *Catalog) MergeUserMovies() error {
	c.mu.Lock()
	userMovies, err := c.store.LoadUserMovies()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if len(userMovies) == 0 {
		userMovies = seedMovies()
		if err = c.store.SaveUserMovies(userMovies); err != nil {
			c.mu.Unlock()
			return err
		}
	}
	added := c.appendMissing(userMovies)
	c.mu.Unlock()

	if added > 0 {
		c.notify(Change{Kind: MoviesMerged})
	}
	return nil
}

// MergeServer appends server rows as "m<id>" movies. Any fetch failure is
// logged and leaves the list as it is.
func (c *Catalog) MergeServer(ctx context.Context) {
	if c.remote == nil {
		return
	}
	rows, err := c.remote.FetchMovies(ctx)
	if err != nil {
		c.log.Warn("could not load server movies", zap.Error(err))
		return
	}

	c.mu.Lock()
	known := make(map[int64]bool)
	for _, m := range c.movies {
		if m.DbId != nil {
			known[*m.DbId] = true
		}
	}
	serverMovies := make([]Movie, 0, len(rows))
	for _, row := range rows {
		if known[row.Id] {
			continue
		}
		serverMovies = append(serverMovies, movieFromServer(row))
	}
	added := c.appendMissing(serverMovies)
	c.mu.Unlock()

	if added > 0 {
		c.notify(Change{Kind: MoviesMerged})
	}
}

// appendMissing must be called with mu held.
func (c *Catalog) appendMissing(movies []Movie) int {
	added := 0
	for _, m := range movies {
		if c.indexOf(m.Id) != -1 {
			continue
		}
		c.movies = append(c.movies, m)
		added++
	}
	return added
}

func (c *Catalog) indexOf(id string) int {
	for i := range c.movies {
		if c.movies[i].Id == id {
			return i
		}
	}
	return -1
}

func movieFromServer(row ServerMovie) Movie {
	dbId := row.Id
	m := Movie{
		Id:     ServerPrefix + strconv.FormatInt(row.Id, 10),
		DbId:   &dbId,
		Title:  row.Title,
		Poster: ServerPlaceholder,
	}
	if row.Year != nil {
		m.Year = *row.Year
	}
	if row.PosterPath != nil && *row.PosterPath != "" {
		m.Poster = *row.PosterPath
	}
	if row.Description != nil {
		m.Description = *row.Description
	}
	return m
}

//------------------------------------------
//------------------------------------------

func (c *Catalog) Movies() []Movie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Movie(nil), c.movies...)
}

func (c *Catalog) Find(id string) (Movie, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i != -1 {
		return c.movies[i], true
	}
	return Movie{}, false
}

// Filter returns the movies whose title contains query, ignoring case.
func (c *Catalog) Filter(query string) []Movie {
	q := strings.ToLower(strings.TrimSpace(query))
	movies := c.Movies()
	if q == "" {
		return movies
	}
	result := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), q) {
			result = append(result, m)
		}
	}
	return result
}

// UserMovies returns the persisted movies the user may drop.
func (c *Catalog) UserMovies() ([]Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.LoadUserMovies()
}

//------------------------------------------
//------------------------------------------

type AddInput struct {
	Title       string
	Year        int
	Description string
	Poster      []byte
	PosterName  string
}

// Add stores the movie locally, then uploads it. On upload success the
// server id and poster path are patched into the local copies. A failed
// upload never removes the local movie.
func (c *Catalog) Add(ctx context.Context, input AddInput) (Movie, Outcome, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return Movie{}, LocalOnly, ErrTitleRequired
	}
	if len(input.Poster) > MaxPosterBytes {
		return Movie{}, LocalOnly, ErrPosterTooLarge
	}
	year := input.Year
	if year <= 0 {
		year = c.now().Year()
	}
	description := strings.TrimSpace(input.Description)

	poster := PlaceholderPoster
	if len(input.Poster) > 0 {
		poster = dataURI(input.Poster)
	}

	c.mu.Lock()
	movie := Movie{
		Id:          c.uniqueId(),
		Title:       title,
		Year:        year,
		Poster:      poster,
		Description: description,
	}
	userMovies, err := c.store.LoadUserMovies()
	if err == nil {
		err = c.store.SaveUserMovies(append(userMovies, movie))
	}
	if err != nil {
		c.mu.Unlock()
		return Movie{}, LocalOnly, err
	}
	c.movies = append(c.movies, movie)
	c.mu.Unlock()
	c.notify(Change{Kind: MovieAdded, MovieId: movie.Id})

	outcome := c.upload(ctx, movie.Id, AddMovieRequest{
		Title:       title,
		Year:        year,
		Description: description,
		Poster:      input.Poster,
		PosterName:  input.PosterName,
	})

	if updated, ok := c.Find(movie.Id); ok {
		movie = updated
	}
	return movie, outcome, nil
}

func (c *Catalog) upload(ctx context.Context, id string, req AddMovieRequest) Outcome {
	if c.remote == nil {
		return LocalOnly
	}
	res, err := c.remote.AddMovie(ctx, req)
	if err != nil {
		var rejected *RejectedError
		if errors.As(err, &rejected) {
			c.log.Warn("server rejected movie", zap.String("id", id), zap.String("error", rejected.Message))
			return Rejected
		}
		c.log.Warn("could not upload movie", zap.String("id", id), zap.Error(err))
		return LocalOnly
	}
	if err = c.patchMovie(id, res); err != nil {
		c.log.Warn("could not save server fields", zap.String("id", id), zap.Error(err))
	}
	c.notify(Change{Kind: MovieUpdated, MovieId: id})
	return Synced
}

// patchMovie copies the server assigned id and poster path into the
// runtime and the persisted copy of the movie.
func (c *Catalog) patchMovie(id string, res *AddMovieResult) error {
	apply := func(m *Movie) {
		if res.Poster != "" {
			m.Poster = res.Poster
		}
		if res.Id != 0 {
			dbId := res.Id
			m.DbId = &dbId
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i != -1 {
		apply(&c.movies[i])
	}

	userMovies, err := c.store.LoadUserMovies()
	if err != nil {
		return err
	}
	for i := range userMovies {
		if userMovies[i].Id == id {
			apply(&userMovies[i])
			return c.store.SaveUserMovies(userMovies)
		}
	}
	return nil
}

// uniqueId must be called with mu held.
func (c *Catalog) uniqueId() string {
	for {
		id := UserPrefix + strconv.FormatInt(c.now().UnixMilli(), 10) + strconv.Itoa(c.randIntN(1000))
		if c.indexOf(id) == -1 {
			return id
		}
	}
}

func dataURI(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

//------------------------------------------
//------------------------------------------

// Drop removes a user-owned movie and its local reviews. confirm is asked
// first, a false answer changes nothing. The server is not contacted.
func (c *Catalog) Drop(id string, confirm func(Movie) bool) error {
	if !IsUserId(id) {
		return ErrNotUserOwned
	}

	c.mu.Lock()
	userMovies, err := c.store.LoadUserMovies()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	idx := -1
	for i := range userMovies {
		if userMovies[i].Id == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrMovieNotFound
	}
	if confirm != nil && !confirm(userMovies[idx]) {
		return ErrDropCancelled
	}

	c.mu.Lock()
	userMovies, err = c.store.LoadUserMovies()
	if err == nil {
		kept := make([]Movie, 0, len(userMovies))
		for _, m := range userMovies {
			if m.Id != id {
				kept = append(kept, m)
			}
		}
		err = c.store.SaveUserMovies(kept)
	}
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if i := c.indexOf(id); i != -1 {
		c.movies = append(c.movies[:i], c.movies[i+1:]...)
	}

	reviews, err := c.store.LoadReviews()
	if err == nil {
		if _, ok := reviews[id]; ok {
			delete(reviews, id)
			err = c.store.SaveReviews(reviews)
		}
	}
	c.mu.Unlock()
	if err != nil {
		c.log.Warn("could not remove local reviews", zap.String("id", id), zap.Error(err))
	}

	c.notify(Change{Kind: MovieDropped, MovieId: id})
	return nil
}

//------------------------------------------
//------------------------------------------

// AddReview appends to the local review log, then posts the review to the
// server. The outcome is Synced or LocalOnly.
func (c *Catalog) AddReview(ctx context.Context, movieId string, rating int, text string) (Review, Outcome, error) {
	movieId = strings.TrimSpace(movieId)
	if movieId == "" {
		return Review{}, LocalOnly, ErrMovieIdRequired
	}
	if rating < MinRating || rating > MaxRating {
		return Review{}, LocalOnly, ErrInvalidRating
	}

	review := Review{
		Rating: rating,
		Text:   strings.TrimSpace(text),
		Date:   c.now().UTC().Truncate(time.Millisecond),
	}

	c.mu.Lock()
	reviews, err := c.store.LoadReviews()
	if err == nil {
		reviews[movieId] = append(reviews[movieId], review)
		err = c.store.SaveReviews(reviews)
	}
	req := ReviewRequest{MovieId: movieId, Rating: rating, Text: review.Text}
	if i := c.indexOf(movieId); i != -1 {
		req.MovieDbId = c.movies[i].DbId
		req.MovieTitle = c.movies[i].Title
	}
	c.mu.Unlock()
	if err != nil {
		return Review{}, LocalOnly, err
	}

	c.notify(Change{Kind: ReviewAdded, MovieId: movieId})

	if c.remote == nil {
		return review, LocalOnly, nil
	}
	if err = c.remote.SubmitReview(ctx, req); err != nil {
		c.log.Warn("could not sync review", zap.String("movieId", movieId), zap.Error(err))
		return review, LocalOnly, nil
	}
	return review, Synced, nil
}

func (c *Catalog) Reviews(movieId string) ([]Review, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	reviews, err := c.store.LoadReviews()
	if err != nil {
		return nil, err
	}
	return reviews[movieId], nil
}
