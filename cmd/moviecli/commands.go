package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"movie_review/pkg/catalog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	listSearch string

	addTitle       string
	addYear        int
	addPoster      string
	addDescription string

	dropYes bool

	reviewRating int
	reviewText   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the movie grid",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		movies := current.catalog.Filter(listSearch)
		reviews, err := reviewsFor(current.catalog, movies)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderGrid(movies, reviews))
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a movie locally and upload it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := catalog.AddInput{
			Title:       addTitle,
			Year:        addYear,
			Description: addDescription,
		}
		if addPoster != "" {
			info, err := os.Stat(addPoster)
			if err != nil {
				return fmt.Errorf("could not read poster file: %w", err)
			}
			if info.Size() > catalog.MaxPosterBytes {
				return catalog.ErrPosterTooLarge
			}
			data, err := os.ReadFile(addPoster)
			if err != nil {
				return fmt.Errorf("could not read poster file: %w", err)
			}
			input.Poster = data
			input.PosterName = filepath.Base(addPoster)
		}

		movie, outcome, err := current.catalog.Add(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderNotice(outcome, addNotice(outcome)))
		fmt.Fprintln(cmd.OutOrStdout(), renderCard(movie, nil))
		return nil
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop [id]",
	Short: "Drop a user-added movie and its local reviews",
	Long:  "Drop a user-added movie and its local reviews. Without an id the droppable movies are listed.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			movies, err := current.catalog.UserMovies()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDropList(movies))
			return nil
		}

		confirm := func(m catalog.Movie) bool {
			if dropYes {
				return true
			}
			return askConfirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Drop %q? This will remove local reviews too. [y/N] ", m.Title))
		}

		err := current.catalog.Drop(args[0], confirm)
		if errors.Is(err, catalog.ErrDropCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing dropped")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Movie dropped")
		return nil
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Add a review to a movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := findMovie(cmd.Context(), current.catalog, args[0]); !ok {
			return catalog.ErrMovieNotFound
		}
		_, outcome, err := current.catalog.AddReview(cmd.Context(), args[0], reviewRating, reviewText)
		if err != nil {
			return err
		}
		message := "Review synced to server"
		if outcome != catalog.Synced {
			message = "Saved locally, server unavailable"
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderNotice(outcome, message))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a movie with its reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		movie, ok := findMovie(cmd.Context(), current.catalog, args[0])
		if !ok {
			return catalog.ErrMovieNotFound
		}
		reviews, err := current.catalog.Reviews(movie.Id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderDetails(movie, reviews))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "only titles containing this text")

	addCmd.Flags().StringVar(&addTitle, "title", "", "movie title")
	addCmd.Flags().IntVar(&addYear, "year", 0, "release year, defaults to the current year")
	addCmd.Flags().StringVar(&addPoster, "poster", "", "poster image file, up to 1.5 MB")
	addCmd.Flags().StringVar(&addDescription, "description", "", "short description")

	dropCmd.Flags().BoolVarP(&dropYes, "yes", "y", false, "drop without asking")

	reviewCmd.Flags().IntVarP(&reviewRating, "rating", "r", 0, "rating from 1 to 5")
	reviewCmd.Flags().StringVarP(&reviewText, "text", "t", "", "review text")
	_ = reviewCmd.MarkFlagRequired("rating")
}

//------------------------------------------
//------------------------------------------

// findMovie looks id up in the runtime list. Ids in the server namespace
// pull the server movies in first when they are not known yet.
func findMovie(ctx context.Context, c *catalog.Catalog, id string) (catalog.Movie, bool) {
	if m, ok := c.Find(id); ok {
		return m, true
	}
	if !strings.HasPrefix(id, catalog.ServerPrefix) {
		return catalog.Movie{}, false
	}
	c.MergeServer(ctx)
	return c.Find(id)
}

func reviewsFor(c *catalog.Catalog, movies []catalog.Movie) (map[string][]catalog.Review, error) {
	result := make(map[string][]catalog.Review, len(movies))
	for _, m := range movies {
		reviews, err := c.Reviews(m.Id)
		if err != nil {
			return nil, err
		}
		result[m.Id] = reviews
	}
	return result, nil
}

func addNotice(outcome catalog.Outcome) string {
	switch outcome {
	case catalog.Synced:
		return "Movie added and saved to server"
	case catalog.Rejected:
		return "Movie added locally, server rejected"
	default:
		return "Movie added locally, server unavailable"
	}
}

func askConfirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
