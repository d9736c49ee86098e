package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

const (
	MaxPosterBytes   = 1536 * 1024
	PosterDir        = "uploads/posters"
	posterSlugLength = 40
)

var (
	allowedPosterTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
	}
	unsafeSlugChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)
)

type IPosterService interface {
	SavePoster(upload *PosterUpload, title string) (string, error)
	RemovePoster(posterPath string) error
}

// PosterUpload is an uploaded poster file before validation.
type PosterUpload struct {
	Size int64
	Open func() (io.ReadCloser, error)
}

func PosterFromHeader(header *multipart.FileHeader) *PosterUpload {
	if header == nil {
		return nil
	}
	return &PosterUpload{
		Size: header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

func PosterFromBytes(data []byte) *PosterUpload {
	return &PosterUpload{
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

type PosterService struct {
	root string
	now  func() time.Time
}

func NewPosterService(root string) *PosterService {
	return &PosterService{
		root: root,
		now:  time.Now,
	}
}

//------------------------------------------
//------------------------------------------

// SavePoster validates the upload and writes it under root/uploads/posters.
// The returned path is relative to root.
func (p *PosterService) SavePoster(upload *PosterUpload, title string) (string, error) {
	if upload.Size > MaxPosterBytes {
		return "", ErrPosterTooLarge
	}

	file, err := upload.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxPosterBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxPosterBytes {
		return "", ErrPosterTooLarge
	}

	ext, ok := allowedPosterTypes[http.DetectContentType(data)]
	if !ok {
		return "", ErrUnsupportedImage
	}
	if _, err = imaging.Decode(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	destDir := filepath.Join(p.root, filepath.FromSlash(PosterDir))
	if err = os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}

	name := p.posterFileName(title, ext)
	if err = os.WriteFile(filepath.Join(destDir, name), data, 0o644); err != nil {
		return "", err
	}
	return PosterDir + "/" + name, nil
}

// RemovePoster deletes a poster previously written by SavePoster. Paths
// outside the poster directory are ignored, and so is a missing file.
func (p *PosterService) RemovePoster(posterPath string) error {
	if !strings.HasPrefix(posterPath, PosterDir+"/") || strings.Contains(posterPath, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(p.root, filepath.FromSlash(posterPath)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (p *PosterService) posterFileName(title string, ext string) string {
	ts := strconv.FormatInt(p.now().Unix(), 10)
	return ts + "-" + PosterSlug(title, "movie-"+ts) + ext
}

// PosterSlug keeps the first 40 characters of title and replaces anything
// outside [a-zA-Z0-9._-] with a dash.
func PosterSlug(title string, fallback string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return fallback
	}
	runes := []rune(title)
	if len(runes) > posterSlugLength {
		runes = runes[:posterSlugLength]
	}
	return unsafeSlugChars.ReplaceAllString(string(runes), "-")
}
