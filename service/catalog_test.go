package service

import (
	"context"
	"net/http"
	"testing"

	"eventify-cli/query"
)

func TestListMoviesQueryParams(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies" {
			t.Errorf("expected /movies, got %s", r.URL.Path)
		}
		params := r.URL.Query()
		if got := params.Get("search"); got != "dune" {
			t.Errorf("expected search=dune, got %q", got)
		}
		if got := params.Get("genre_id"); got != "3" {
			t.Errorf("expected genre_id=3, got %q", got)
		}
		if got := params.Get("date"); got != "2026-09-05" {
			t.Errorf("expected date=2026-09-05, got %q", got)
		}
		if got := params.Get("page"); got != "2" {
			t.Errorf("expected page=2, got %q", got)
		}
		if got := params.Get("per_page"); got != "8" {
			t.Errorf("expected per_page=8, got %q", got)
		}
		if got := params.Get("status"); got != "now_showing" {
			t.Errorf("expected status=now_showing, got %q", got)
		}
		w.Write([]byte(`{"data":[{"id":1,"title":"Dune"}],"current_page":2,"last_page":4,"total":25}`))
	}))

	page, err := client.ListMovies(context.Background(), query.FilterSet{
		Search:  " dune ",
		GenreID: "3",
		Date:    "2026-09-05",
		Page:    2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].Title != "Dune" {
		t.Fatalf("unexpected page data: %+v", page.Data)
	}
	if page.CurrentPage != 2 || page.LastPage != 4 || page.Total != 25 {
		t.Fatalf("unexpected pagination envelope: %+v", page)
	}
}

func TestListMoviesOmitsDefaultFilters(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		if params.Has("search") {
			t.Error("empty search must not be sent")
		}
		if params.Has("genre_id") {
			t.Error("the all-genres sentinel must not be sent")
		}
		w.Write([]byte(`{"data":[]}`))
	}))

	page, err := client.ListMovies(context.Background(), query.FilterSet{
		GenreID: query.GenreAll,
		Date:    "2026-09-01",
		Page:    1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A missing envelope clamps to a single page.
	if page.CurrentPage != 1 || page.LastPage != 1 {
		t.Fatalf("expected clamped pagination, got %+v", page)
	}
}

func TestGetMovieByID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies/7" {
			t.Errorf("expected /movies/7, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "2026-09-05" {
			t.Errorf("expected date param, got %q", got)
		}
		w.Write([]byte(`{"id":7,"title":"Arrival","duration_minutes":116}`))
	}))

	movie, err := client.GetMovieByID(context.Background(), 7, "2026-09-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie.Id != 7 || movie.Title != "Arrival" || movie.DurationMinutes != 116 {
		t.Fatalf("unexpected movie: %+v", movie)
	}
}

func TestGetMovieByIDRequiresID(t *testing.T) {
	client := NewClient(nil, "http://localhost", nil)
	if _, err := client.GetMovieByID(context.Background(), 0, ""); err == nil {
		t.Fatal("expected an error for a missing id")
	}
}

func TestListGenres(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/genres" {
			t.Errorf("expected /genres, got %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id":1,"name":"Action"},{"id":2,"name":"Drama"}]`))
	}))

	genres, err := client.ListGenres(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(genres) != 2 || genres[0].Name != "Action" || genres[1].Id != 2 {
		t.Fatalf("unexpected genres: %+v", genres)
	}
}
