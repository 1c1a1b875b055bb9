package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviepicks/internal/model"
)

func TestClient_Search_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("apikey = %q, want %q", got, "test-key")
		}
		if got := r.URL.Query().Get("s"); got != "dune" {
			t.Errorf("s = %q, want %q", got, "dune")
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want %q", got, "2")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Search": [
				{"Title": "Dune", "Year": "2021", "imdbID": "tt1160419", "Poster": "https://example.com/dune.jpg"},
				{"Title": "Dune", "Year": "1984", "imdbID": "tt0087182", "Poster": "N/A"}
			],
			"totalResults": "12",
			"Response": "True"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")

	result, err := c.Search(context.Background(), "dune", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(result.Items))
	}
	if result.Items[0].IMDBID != "tt1160419" {
		t.Errorf("imdbID = %q, want tt1160419", result.Items[0].IMDBID)
	}
	if result.TotalResults != 12 {
		t.Errorf("total = %d, want 12", result.TotalResults)
	}
	if result.Page != 2 {
		t.Errorf("page = %d, want 2", result.Page)
	}
}

func TestClient_Search_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Response": "False", "Error": "Movie not found!"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")

	_, err := c.Search(context.Background(), "zzzzzz", 1)
	if !errors.Is(err, model.ErrLookupFailed) {
		t.Errorf("error = %v, want %v", err, model.ErrLookupFailed)
	}
}

func TestClient_Search_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "wrong-key")

	_, err := c.Search(context.Background(), "dune", 1)
	if !errors.Is(err, model.ErrLookupFailed) {
		t.Errorf("error = %v, want %v", err, model.ErrLookupFailed)
	}
}

func TestClient_Search_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before the request

	c := NewClient(srv.URL, "test-key")

	_, err := c.Search(context.Background(), "dune", 1)
	if !errors.Is(err, model.ErrLookupFailed) {
		t.Errorf("error = %v, want %v", err, model.ErrLookupFailed)
	}
}

func TestClient_GetByID_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("i"); got != "tt1160419" {
			t.Errorf("i = %q, want tt1160419", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Title": "Dune",
			"Genre": "Action, Adventure, Drama",
			"Plot": "A noble family becomes embroiled in a war for a desert planet.",
			"Poster": "https://example.com/dune.jpg",
			"imdbID": "tt1160419",
			"Response": "True"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")

	detail, err := c.GetByID(context.Background(), "tt1160419")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if detail.Title != "Dune" {
		t.Errorf("title = %q, want Dune", detail.Title)
	}
	if detail.Genre != "Action, Adventure, Drama" {
		t.Errorf("genre = %q", detail.Genre)
	}
	if detail.Plot == "" {
		t.Error("expected a plot")
	}
}
