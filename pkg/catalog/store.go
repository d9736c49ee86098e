package catalog

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	documentsBucket = "documents"
	UserMoviesKey   = "user_movies_v1"
	ReviewsKey      = "movie_reviews_v1"
)

// Store persists the user movie set and the review log between runs.
// A missing or corrupt document loads as empty.
type Store interface {
	LoadUserMovies() ([]Movie, error)
	SaveUserMovies(movies []Movie) error
	LoadReviews() (map[string][]Review, error)
	SaveReviews(reviews map[string][]Review) error
	Close() error
}

//------------------------------------------
//------------------------------------------

type BoltStore struct {
	db *bolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(documentsBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) LoadUserMovies() ([]Movie, error) {
	data, err := s.get(UserMoviesKey)
	if err != nil {
		return nil, err
	}
	return decodeDocument(data, []Movie{}), nil
}

func (s *BoltStore) SaveUserMovies(movies []Movie) error {
	if movies == nil {
		movies = []Movie{}
	}
	return s.put(UserMoviesKey, movies)
}

func (s *BoltStore) LoadReviews() (map[string][]Review, error) {
	data, err := s.get(ReviewsKey)
	if err != nil {
		return nil, err
	}
	return decodeDocument(data, map[string][]Review{}), nil
}

func (s *BoltStore) SaveReviews(reviews map[string][]Review) error {
	if reviews == nil {
		reviews = map[string][]Review{}
	}
	return s.put(ReviewsKey, reviews)
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) get(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(documentsBucket))
		if b == nil {
			return errors.New("bucket not found")
		}
		// the slice is only valid inside the transaction
		data = append([]byte(nil), b.Get([]byte(key))...)
		return nil
	})
	return data, err
}

func (s *BoltStore) put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(documentsBucket)).Put([]byte(key), data)
	})
}

//------------------------------------------
//------------------------------------------

// MemoryStore keeps documents as encoded JSON in memory.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) LoadUserMovies() ([]Movie, error) {
	return decodeDocument(s.get(UserMoviesKey), []Movie{}), nil
}

func (s *MemoryStore) SaveUserMovies(movies []Movie) error {
	return s.put(UserMoviesKey, movies)
}

func (s *MemoryStore) LoadReviews() (map[string][]Review, error) {
	return decodeDocument(s.get(ReviewsKey), map[string][]Review{}), nil
}

func (s *MemoryStore) SaveReviews(reviews map[string][]Review) error {
	return s.put(ReviewsKey, reviews)
}

func (s *MemoryStore) Close() error {
	return nil
}

// SetRaw stores data under key as-is.
func (s *MemoryStore) SetRaw(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = data
}

func (s *MemoryStore) get(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[key]
}

func (s *MemoryStore) put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = data
	return nil
}

//------------------------------------------
//------------------------------------------

// decodeDocument returns empty when data is missing, corrupt or null.
func decodeDocument[T any](data []byte, empty T) T {
	if len(data) == 0 {
		return empty
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return empty
	}
	if isNilDocument(v) {
		return empty
	}
	return v
}

func isNilDocument(v interface{}) bool {
	switch d := v.(type) {
	case []Movie:
		return d == nil
	case map[string][]Review:
		return d == nil
	}
	return false
}
