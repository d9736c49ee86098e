package model

import "time"

type Movie struct {
	Id          int64     `gorm:"column:id;type:bigserial;autoIncrement;primaryKey;" json:"id"`
	Title       string    `gorm:"column:title;type:varchar(255);not null;" json:"title"`
	Year        *int      `gorm:"column:year;type:integer;" json:"year"`
	PosterPath  *string   `gorm:"column:poster_path;type:text;" json:"poster_path"`
	Description string    `gorm:"column:description;type:text;not null;default:'';" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamp(3);not null;default:CURRENT_TIMESTAMP;index:movies_created_at_idx,sort:desc;" json:"created_at"`
}

func (Movie) TableName() string {
	return "movies"
}

//---------------------------------------
//---------------------------------------

// MoviePatch is a partial update. Nil fields are left untouched.
type MoviePatch struct {
	Title       *string
	Year        *int
	Description *string
	PosterPath  *string
}

var moviePatchColumns = []struct {
	column string
	value  func(p *MoviePatch) (interface{}, bool)
}{
	{"title", func(p *MoviePatch) (interface{}, bool) { return deref(p.Title) }},
	{"year", func(p *MoviePatch) (interface{}, bool) { return deref(p.Year) }},
	{"description", func(p *MoviePatch) (interface{}, bool) { return deref(p.Description) }},
	{"poster_path", func(p *MoviePatch) (interface{}, bool) { return deref(p.PosterPath) }},
}

func deref[T any](v *T) (interface{}, bool) {
	if v == nil {
		return nil, false
	}
	return *v, true
}

// Columns returns the supplied fields keyed by column name, plus the column
// names in a stable order.
func (p *MoviePatch) Columns() (map[string]interface{}, []string) {
	values := make(map[string]interface{}, len(moviePatchColumns))
	names := make([]string, 0, len(moviePatchColumns))
	if p == nil {
		return values, names
	}
	for _, c := range moviePatchColumns {
		if v, ok := c.value(p); ok {
			values[c.column] = v
			names = append(names, c.column)
		}
	}
	return values, names
}

func (p *MoviePatch) IsEmpty() bool {
	_, names := p.Columns()
	return len(names) == 0
}

//---------------------------------------
//---------------------------------------

type MovieListRes struct {
	Success bool    `json:"success"`
	Count   int     `json:"count"`
	Rows    []Movie `json:"rows"`
}

type AddMovieRes struct {
	Success bool    `json:"success"`
	Id      int64   `json:"id"`
	Title   string  `json:"title"`
	Poster  *string `json:"poster"`
}

type EditMovieRes struct {
	Success       bool     `json:"success"`
	Id            int64    `json:"id"`
	UpdatedFields []string `json:"updated_fields"`
	Poster        *string  `json:"poster"`
}

type DeleteMovieRes struct {
	Success   bool  `json:"success"`
	DeletedId int64 `json:"deleted_id"`
}
