package main

import (
	"fmt"
	"math"
	"movie_review/pkg/catalog"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	cardWidth   = 30
	gridColumns = 3
)

var (
	accent      = lipgloss.Color("#ffb86b")
	muted       = lipgloss.Color("#8a8f98")
	success     = lipgloss.Color("#8BC34A")
	warning     = lipgloss.Color("#FFC107")
	destructive = lipgloss.Color("#e53935")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1).
			Width(cardWidth)
	titleStyle = lipgloss.NewStyle().Bold(true)
	idStyle    = lipgloss.NewStyle().Foreground(muted)
	starStyle  = lipgloss.NewStyle().Foreground(accent)
	mutedStyle = lipgloss.NewStyle().Foreground(muted)
)

// Stars draws five stars, the average rounded to the nearest whole star.
func Stars(avg float64, ok bool) string {
	filled := 0
	if ok && avg > 0 {
		filled = int(math.Round(avg))
	}
	if filled > catalog.MaxRating {
		filled = catalog.MaxRating
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", catalog.MaxRating-filled)
}

func scoreLine(reviews []catalog.Review) string {
	avg, ok := catalog.AverageRating(reviews)
	score := "no reviews"
	if ok {
		score = fmt.Sprintf("%.1f (%d)", avg, len(reviews))
	}
	return starStyle.Render(Stars(avg, ok)) + " " + mutedStyle.Render(score)
}

func renderCard(m catalog.Movie, reviews []catalog.Review) string {
	lines := []string{
		titleStyle.Render(m.Title),
		idStyle.Render(fmt.Sprintf("%s  %d", m.Id, m.Year)),
		scoreLine(reviews),
	}
	if m.Description != "" {
		lines = append(lines, m.Description)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func renderGrid(movies []catalog.Movie, reviews map[string][]catalog.Review) string {
	if len(movies) == 0 {
		return mutedStyle.Render("No movies found.")
	}
	rows := make([]string, 0, len(movies)/gridColumns+1)
	for start := 0; start < len(movies); start += gridColumns {
		end := min(start+gridColumns, len(movies))
		cards := make([]string, 0, gridColumns)
		for _, m := range movies[start:end] {
			cards = append(cards, renderCard(m, reviews[m.Id]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderDetails(m catalog.Movie, reviews []catalog.Review) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Title))
	fmt.Fprintf(&b, "\nYear: %d\n", m.Year)
	if m.DbId != nil {
		fmt.Fprintf(&b, "Server id: %d\n", *m.DbId)
	}
	b.WriteString(scoreLine(reviews))
	b.WriteString("\n\nReviews:\n")
	if len(reviews) == 0 {
		b.WriteString("No reviews yet.")
	}
	for _, r := range reviews {
		fmt.Fprintf(&b, "• (%d) %s\n", r.Rating, r.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderDropList(movies []catalog.Movie) string {
	if len(movies) == 0 {
		return mutedStyle.Render("No movies to drop.")
	}
	lines := make([]string, 0, len(movies))
	for _, m := range movies {
		lines = append(lines, idStyle.Render(m.Id)+"  "+m.Title)
	}
	return strings.Join(lines, "\n")
}

func renderNotice(outcome catalog.Outcome, message string) string {
	color := warning
	switch outcome {
	case catalog.Synced:
		color = success
	case catalog.Rejected:
		color = destructive
	}
	return lipgloss.NewStyle().Foreground(color).Render(message)
}
