package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"movie_review/db/redis"
	"movie_review/model"
	errorHandler "movie_review/pkg/error"
	"strconv"
	"time"
)

type IMovieListCache interface {
	GetMovieList(ctx context.Context, limit int) ([]model.Movie, bool)
	SetMovieList(ctx context.Context, limit int, movies []model.Movie)
	InvalidateMovieList(ctx context.Context)
}

const (
	movieListCachePrefix = "movies:list:"
	movieListCacheTTL    = 5 * time.Minute
)

// RedisMovieListCache treats any redis failure as a miss.
type RedisMovieListCache struct{}

func NewRedisMovieListCache() *RedisMovieListCache {
	return &RedisMovieListCache{}
}

//------------------------------------------
//------------------------------------------

func (RedisMovieListCache) GetMovieList(ctx context.Context, limit int) ([]model.Movie, bool) {
	result, err := redis.GetRedis(ctx, movieListCachePrefix+strconv.Itoa(limit))
	if err != nil {
		if !redis.IsNil(err) && !errors.Is(err, redis.ErrNotConnected) {
			errorHandler.SaveError(fmt.Sprintf("Redis Error on reading movie list: %v", err), err)
		}
		return nil, false
	}
	if result == "" {
		return nil, false
	}
	var movies []model.Movie
	if err = json.Unmarshal([]byte(result), &movies); err != nil {
		return nil, false
	}
	return movies, true
}

func (RedisMovieListCache) SetMovieList(ctx context.Context, limit int, movies []model.Movie) {
	jsonData, err := json.Marshal(movies)
	if err != nil {
		errorHandler.SaveError(fmt.Sprintf("Redis Error on saving movie list: %v", err), err)
		return
	}
	err = redis.SetRedis(ctx, movieListCachePrefix+strconv.Itoa(limit), jsonData, movieListCacheTTL)
	if err != nil && !errors.Is(err, redis.ErrNotConnected) {
		errorHandler.SaveError(fmt.Sprintf("Redis Error on saving movie list: %v", err), err)
	}
}

func (RedisMovieListCache) InvalidateMovieList(ctx context.Context) {
	err := redis.DeleteByPrefix(ctx, movieListCachePrefix)
	if err != nil && !errors.Is(err, redis.ErrNotConnected) {
		errorHandler.SaveError(fmt.Sprintf("Redis Error on invalidating movie list: %v", err), err)
	}
}

//------------------------------------------
//------------------------------------------

// NoopMovieListCache always misses.
type NoopMovieListCache struct{}

func (NoopMovieListCache) GetMovieList(context.Context, int) ([]model.Movie, bool) {
	return nil, false
}

func (NoopMovieListCache) SetMovieList(context.Context, int, []model.Movie) {}

func (NoopMovieListCache) InvalidateMovieList(context.Context) {}
