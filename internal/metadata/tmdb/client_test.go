package tmdb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rsekulic/videoteka-v1/internal/domain"
)

const duneDetails = `{
  "id": 693134,
  "title": "Dune: Part Two",
  "release_date": "2024-02-27",
  "overview": "Paul Atreides unites with the Fremen.",
  "poster_path": "/poster.jpg",
  "backdrop_path": "/backdrop.jpg",
  "runtime": 166,
  "genres": [{"id": 878, "name": "Science Fiction"}, {"id": 12, "name": "Adventure"}],
  "credits": {
    "cast": [{"name": "Timothée Chalamet"}, {"name": "Zendaya"}, {"name": "Rebecca Ferguson"},
             {"name": "Javier Bardem"}, {"name": "Josh Brolin"}, {"name": "Austin Butler"}],
    "crew": [{"name": "Someone", "job": "Executive Producer"}, {"name": "Denis Villeneuve", "job": "Director"}]
  },
  "videos": {"results": [
    {"key": "vimeo1", "site": "Vimeo", "type": "Trailer"},
    {"key": "teaser", "site": "YouTube", "type": "Teaser"},
    {"key": "Way9Dexny3w", "site": "YouTube", "type": "Trailer"}
  ]}
}`

const severanceDetails = `{
  "id": 95396,
  "name": "Severance",
  "first_air_date": "2022-02-17",
  "overview": "Mark leads a team of office workers.",
  "number_of_seasons": 2,
  "genres": [{"id": 18, "name": "Drama"}],
  "credits": {"cast": [{"name": "Adam Scott"}], "crew": [{"name": "Dan Erickson", "job": "Executive Producer"}]},
  "videos": {"results": [{"key": "vimeo2", "site": "Vimeo", "type": "Trailer"}]}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("include_adult") != "false" {
			t.Errorf("include_adult not disabled")
		}
		switch r.URL.Query().Get("query") {
		case "dune part two":
			io.WriteString(w, `{"results":[{"id":1,"title":"Something Else"},{"id":693134,"title":"Dune: Part Two"}]}`)
		default:
			io.WriteString(w, `{"results":[]}`)
		}
	})
	mux.HandleFunc("/search/tv", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results":[{"id":95396,"name":"Severance"}]}`)
	})
	mux.HandleFunc("/movie/693134", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("append_to_response") != "credits,videos" {
			t.Errorf("details without credits and videos")
		}
		io.WriteString(w, duneDetails)
	})
	mux.HandleFunc("/tv/95396", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, severanceDetails)
	})
	mux.HandleFunc("/movie/404", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success": false, "status_message": "not found"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchPicksFuzzyMatchAndMapsMovie(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, "token", "", 100, nil)

	item, err := c.Search(context.Background(), "dune part two", MediaMovie)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if item.Title != "Dune: Part Two" || item.Year != "2024" || item.Kind != domain.KindMovie {
		t.Errorf("unexpected identity: %+v", item)
	}
	if item.Runtime != "166m" {
		t.Errorf("runtime = %q, want 166m", item.Runtime)
	}
	if item.Director != "Denis Villeneuve" {
		t.Errorf("director = %q", item.Director)
	}
	if len(item.Cast) != 5 {
		t.Errorf("cast has %d names, want 5", len(item.Cast))
	}
	if item.TrailerURL != "https://www.youtube.com/watch?v=Way9Dexny3w" {
		t.Errorf("trailer = %q", item.TrailerURL)
	}
	if item.Poster != "https://image.tmdb.org/t/p/w780/poster.jpg" || item.Backdrop != "https://image.tmdb.org/t/p/original/backdrop.jpg" {
		t.Errorf("images = %q %q", item.Poster, item.Backdrop)
	}
	if item.ID != "" {
		t.Errorf("lookup result should carry no id, got %q", item.ID)
	}
}

func TestSeriesMappingFallbacks(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, "token", "", 100, nil)

	item, err := c.Search(context.Background(), "severance", MediaTV)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if item.Kind != domain.KindSeries || item.Seasons != 2 || item.Runtime != "" {
		t.Errorf("unexpected series fields: %+v", item)
	}
	if item.Director != "Dan Erickson" {
		t.Errorf("director fallback = %q, want executive producer", item.Director)
	}
	if item.TrailerURL != "https://www.youtube.com/watch?v=vimeo2" {
		t.Errorf("trailer fallback = %q", item.TrailerURL)
	}
	if item.Poster != "" {
		t.Errorf("poster should be empty without a path, got %q", item.Poster)
	}
}

func TestNoResultsAndFailedDetails(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, "token", "", 100, nil)
	ctx := context.Background()

	if _, err := c.Search(ctx, "zzzz", MediaMovie); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("empty search: got %v, want ErrNotFound", err)
	}
	if _, err := c.DetailsByID(ctx, "404", MediaMovie); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("success=false: got %v, want ErrNotFound", err)
	}
	if _, err := c.DetailsByID(ctx, "abc", MediaMovie); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("bad id: got %v, want ErrNotFound", err)
	}
}

func TestUnconfiguredClientFindsNothing(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", "", 1, nil)
	if c.Configured() {
		t.Fatal("client without credentials reports configured")
	}
	if _, err := c.Search(context.Background(), "dune", MediaMovie); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestYearOf(t *testing.T) {
	cases := map[string]string{"2014-11-05": "2014", "": "N/A", "2019": "2019"}
	for in, want := range cases {
		if got := yearOf(in); got != want {
			t.Errorf("yearOf(%q) = %q, want %q", in, got, want)
		}
	}
}
