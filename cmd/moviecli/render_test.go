package main

import (
	"bytes"
	"context"
	"movie_review/pkg/catalog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStars(t *testing.T) {
	tests := []struct {
		avg  float64
		ok   bool
		want string
	}{
		{0, false, "☆☆☆☆☆"},
		{4.4, true, "★★★★☆"},
		{4.5, true, "★★★★★"},
		{1, true, "★☆☆☆☆"},
		{2.49, true, "★★☆☆☆"},
		{7, true, "★★★★★"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stars(tt.avg, tt.ok), "%v", tt.avg)
	}
}

func TestAskConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes ", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := askConfirm(strings.NewReader(tt.input), &out, "Drop it? [y/N] ")
		assert.Equal(t, tt.want, got, "%q", tt.input)
		assert.Equal(t, "Drop it? [y/N] ", out.String())
	}
}

func TestAddNotice(t *testing.T) {
	assert.Equal(t, "Movie added and saved to server", addNotice(catalog.Synced))
	assert.Equal(t, "Movie added locally, server rejected", addNotice(catalog.Rejected))
	assert.Equal(t, "Movie added locally, server unavailable", addNotice(catalog.LocalOnly))
}

func TestRenderGridAndDetails(t *testing.T) {
	c := catalog.New(catalog.NewMemoryStore(), nil)
	require.NoError(t, c.MergeUserMovies())

	movies := c.Movies()
	require.NotEmpty(t, movies)
	_, _, err := c.AddReview(context.Background(), movies[0].Id, 4, "solid")
	require.NoError(t, err)

	reviews, err := reviewsFor(c, movies)
	require.NoError(t, err)
	require.Len(t, reviews[movies[0].Id], 1)

	grid := renderGrid(movies, reviews)
	for _, m := range movies {
		assert.Contains(t, grid, m.Id)
	}
	assert.Contains(t, grid, "4.0 (1)")
	assert.Contains(t, grid, "no reviews")

	details := renderDetails(movies[0], reviews[movies[0].Id])
	assert.Contains(t, details, movies[0].Title)
	assert.Contains(t, details, "(4) solid")

	empty := renderDetails(movies[1], nil)
	assert.Contains(t, empty, "No reviews yet.")

	assert.Contains(t, renderGrid(nil, nil), "No movies found.")
}

func TestRenderDropList(t *testing.T) {
	assert.Contains(t, renderDropList(nil), "No movies to drop.")

	list := renderDropList([]catalog.Movie{{Id: "um1", Title: "One"}, {Id: "u17", Title: "Two"}})
	assert.Contains(t, list, "um1")
	assert.Contains(t, list, "One")
	assert.Contains(t, list, "u17")
	assert.Contains(t, list, "Two")
}
