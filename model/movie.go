package model

type Genre struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}

type Movie struct {
	Id              int64       `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	PosterURL       string      `json:"poster_url"`
	DurationMinutes int         `json:"duration_minutes"`
	Genres          []Genre     `json:"genres"`
	Screenings      []Screening `json:"screenings"`
}

// MoviePage is one page of the catalog listing, shaped like the API's
// paginated envelope.
type MoviePage struct {
	Data        []Movie `json:"data"`
	CurrentPage int     `json:"current_page"`
	LastPage    int     `json:"last_page"`
	Total       int     `json:"total"`
}
