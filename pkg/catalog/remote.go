package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

const defaultRemoteTimeout = 10 * time.Second

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrMalformedResponse = errors.New("malformed server response")
)

// RejectedError is a well-formed answer with success=false.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Message)
}

// Remote is the movie server as seen by the client.
type Remote interface {
	FetchMovies(ctx context.Context) ([]ServerMovie, error)
	AddMovie(ctx context.Context, req AddMovieRequest) (*AddMovieResult, error)
	SubmitReview(ctx context.Context, req ReviewRequest) error
}

type ServerMovie struct {
	Id          int64   `json:"id"`
	Title       string  `json:"title"`
	Year        *int    `json:"year"`
	PosterPath  *string `json:"poster_path"`
	Description *string `json:"description"`
}

type AddMovieRequest struct {
	Title       string
	Year        int
	Description string
	Poster      []byte
	PosterName  string
}

type AddMovieResult struct {
	Id     int64
	Poster string
}

type ReviewRequest struct {
	MovieId    string `json:"movieId"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
	MovieDbId  *int64 `json:"movieDbId,omitempty"`
	MovieTitle string `json:"movieTitle,omitempty"`
}

//------------------------------------------
//------------------------------------------

type HTTPRemote struct {
	baseURL string
	client  *fasthttp.Client
	timeout time.Duration
}

func NewHTTPRemote(baseURL string) *HTTPRemote {
	return &HTTPRemote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			Name:            "moviecli",
			MaxConnsPerHost: 16,
		},
		timeout: defaultRemoteTimeout,
	}
}

type listMoviesRes struct {
	Success *bool         `json:"success"`
	Rows    []ServerMovie `json:"rows"`
}

type addMovieRes struct {
	Success *bool       `json:"success"`
	Error   string      `json:"error"`
	Id      json.Number `json:"id"`
	Poster  *string     `json:"poster"`
}

type envelopeRes struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

func (r *HTTPRemote) FetchMovies(ctx context.Context) ([]ServerMovie, error) {
	status, body, err := r.do(ctx, fasthttp.MethodGet, "/v1/movies", "", nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}

	var res listMoviesRes
	if err = json.Unmarshal(body, &res); err != nil || res.Success == nil {
		return nil, ErrMalformedResponse
	}
	if !*res.Success {
		return nil, &RejectedError{Status: status}
	}
	return res.Rows, nil
}

func (r *HTTPRemote) AddMovie(ctx context.Context, req AddMovieRequest) (*AddMovieResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("title", req.Title)
	_ = w.WriteField("year", strconv.Itoa(req.Year))
	_ = w.WriteField("description", req.Description)
	if len(req.Poster) > 0 {
		name := req.PosterName
		if name == "" {
			name = "poster"
		}
		part, err := w.CreateFormFile("poster", name)
		if err != nil {
			return nil, err
		}
		if _, err = part.Write(req.Poster); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	status, body, err := r.do(ctx, fasthttp.MethodPost, "/v1/movies/add", w.FormDataContentType(), buf.Bytes())
	if err != nil {
		return nil, err
	}

	var res addMovieRes
	if err = checkEnvelope(status, body, &res); err != nil {
		return nil, err
	}
	if !*res.Success {
		return nil, &RejectedError{Status: status, Message: res.Error}
	}

	result := &AddMovieResult{}
	if res.Id != "" {
		if result.Id, err = res.Id.Int64(); err != nil {
			return nil, ErrMalformedResponse
		}
	}
	if res.Poster != nil {
		result.Poster = *res.Poster
	}
	return result, nil
}

func (r *HTTPRemote) SubmitReview(ctx context.Context, req ReviewRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	status, body, err := r.do(ctx, fasthttp.MethodPost, "/v1/reviews/submit", "application/json", payload)
	if err != nil {
		return err
	}

	var res envelopeRes
	if err = checkEnvelope(status, body, &res); err != nil {
		return err
	}
	if !*res.Success {
		return &RejectedError{Status: status, Message: res.Error}
	}
	return nil
}

//------------------------------------------
//------------------------------------------

func (r *HTTPRemote) do(ctx context.Context, method string, path string, contentType string, body []byte) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if contentType != "" {
		req.Header.SetContentType(contentType)
	}
	if body != nil {
		req.SetBodyRaw(body)
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}
	if err := ctx.Err(); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := r.client.DoTimeout(req, resp, timeout); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp.StatusCode(), append([]byte(nil), resp.Body()...), nil
}

type envelope interface {
	success() *bool
}

func (r *addMovieRes) success() *bool { return r.Success }
func (r *envelopeRes) success() *bool { return r.Success }

// rejectStatuses are the non-2xx answers that carry a validation verdict.
// Every other non-2xx answer means the server could not take the request.
var rejectStatuses = map[int]bool{
	fasthttp.StatusBadRequest:            true,
	fasthttp.StatusRequestEntityTooLarge: true,
	fasthttp.StatusUnsupportedMediaType:  true,
}

// checkEnvelope decodes body into v. Only 2xx answers and the statuses in
// rejectStatuses are decoded, the rest count as unavailable.
func checkEnvelope(status int, body []byte, v envelope) error {
	is2xx := status >= 200 && status < 300
	if !is2xx && !rejectStatuses[status] {
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}
	if err := json.Unmarshal(body, v); err != nil || v.success() == nil {
		if !is2xx {
			return fmt.Errorf("%w: status %d", ErrUnavailable, status)
		}
		return ErrMalformedResponse
	}
	if !is2xx && *v.success() {
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}
	return nil
}
