package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"moviepicks/internal/httputil"
	"moviepicks/internal/metadata"
	"moviepicks/internal/model"
	"moviepicks/internal/service"
	"moviepicks/internal/session"
	"moviepicks/internal/transport/http/middleware"
)

const (
	FlashMovieAdded    = "movieAdded"
	FlashNeedTitle     = "needTitle"
	FlashMovieMissing  = "movieMissing"
	FlashNothingToPick = "nothingToPick"
	FlashSearchFailed  = "searchFailed"
)

// MovieHandler groups the movie-list endpoints and their dependencies.
type MovieHandler struct {
	movieService *service.MovieService
	metadata     *metadata.Client
	sessions     *session.Manager
}

func NewMovieHandler(movieService *service.MovieService, metadataClient *metadata.Client, sessions *session.Manager) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
		metadata:     metadataClient,
		sessions:     sessions,
	}
}

// homeView is the view model for the home page
type homeView struct {
	Username string            `json:"username"`
	Movies   []model.Movie     `json:"movies"`
	Flash    map[string]string `json:"flash"`
}

// searchView is the view model for the add-movie page, with or without
// metadata search results
type searchView struct {
	Results *metadata.SearchResult `json:"results,omitempty"`
	Flash   map[string]string      `json:"flash"`
}

// pickView is the view model for the random pick page
type pickView struct {
	Movie *model.Movie `json:"movie"`
}

// Home renders the current user's movie list
// GET /
func (h *MovieHandler) Home(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	movies, err := h.movieService.List(r.Context(), sess.UserID)
	if err != nil {
		log.Printf("[movie] failed to list movies for user %d: %v", sess.UserID, err)
		httputil.WriteInternalError(w, "Failed to load movie list")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, homeView{
		Username: sess.Username,
		Movies:   movies,
		Flash:    h.drainFlash(r, sess),
	})
}

// NewMoviePage renders the add-movie view model
// GET /movies/new
func (h *MovieHandler) NewMoviePage(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	httputil.WriteJSON(w, http.StatusOK, searchView{
		Flash: h.drainFlash(r, sess),
	})
}

// Search queries the metadata service by title
// POST /movies/search with form field "search"
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, r.PostFormValue("search"), 1)
}

// SearchPage paginates through metadata results for a title
// GET /movies/search/{title}/{page}
func (h *MovieHandler) SearchPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || page < 1 {
		page = 1
	}
	h.search(w, r, chi.URLParam(r, "title"), page)
}

func (h *MovieHandler) search(w http.ResponseWriter, r *http.Request, title string, page int) {
	sess, _ := middleware.GetSession(r.Context())

	title = strings.TrimSpace(title)
	if title == "" {
		h.flash(r, sess, FlashSearchFailed, "Please enter a title to search for")
		httputil.Redirect(w, r, "/movies/new")
		return
	}

	results, err := h.metadata.Search(r.Context(), title, page)
	if err != nil {
		log.Printf("[movie] metadata search %q page %d failed: %v", title, page, err)
		h.flash(r, sess, FlashSearchFailed, "Movie lookup failed, try again later")
		httputil.Redirect(w, r, "/movies/new")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, searchView{
		Results: results,
		Flash:   h.drainFlash(r, sess),
	})
}

// Create adds a movie to the current user's list. Fields come either from the
// add-movie form directly or from a picked search result; when an imdb_id is
// posted the metadata service fills in whatever the form left blank.
// POST /movies with movie[title], movie[genre], movie[plot], movie[poster_url], movie[imdb_id]
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	req := &model.AddMovieRequest{
		Title:  r.PostFormValue("movie[title]"),
		Genres: splitGenres(r.PostFormValue("movie[genre]")),
	}
	if plot := r.PostFormValue("movie[plot]"); plot != "" {
		req.Plot = &plot
	}
	if poster := r.PostFormValue("movie[poster_url]"); poster != "" {
		req.PosterURL = &poster
	}

	if imdbID := r.PostFormValue("movie[imdb_id]"); imdbID != "" {
		detail, err := h.metadata.GetByID(r.Context(), imdbID)
		if err != nil {
			log.Printf("[movie] metadata lookup %q failed: %v", imdbID, err)
			h.flash(r, sess, FlashSearchFailed, "Movie lookup failed, try again later")
			httputil.Redirect(w, r, "/movies/new")
			return
		}
		fillFromDetail(req, detail)
	}

	movie, err := h.movieService.Add(r.Context(), sess.UserID, req)
	if err != nil {
		if errors.Is(err, model.ErrTitleRequired) {
			h.flash(r, sess, FlashNeedTitle, "Please enter a title")
			httputil.Redirect(w, r, "/movies/new")
			return
		}
		log.Printf("[movie] failed to add movie for user %d: %v", sess.UserID, err)
		h.flash(r, sess, FlashGenericFailure, "Something went wrong, please try again")
		httputil.Redirect(w, r, "/movies/new")
		return
	}

	h.flash(r, sess, FlashMovieAdded, movie.Title+" added to your list")
	httputil.Redirect(w, r, "/")
}

// MarkWatched flags a movie in the current user's list as watched
// POST /movies/{id}
func (h *MovieHandler) MarkWatched(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	movieID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.flash(r, sess, FlashMovieMissing, "That movie isn't in your list")
		httputil.Redirect(w, r, "/")
		return
	}

	if err := h.movieService.MarkWatched(r.Context(), sess.UserID, movieID); err != nil {
		if errors.Is(err, model.ErrMovieNotFound) {
			h.flash(r, sess, FlashMovieMissing, "That movie isn't in your list")
		} else {
			log.Printf("[movie] failed to mark movie %d watched: %v", movieID, err)
			h.flash(r, sess, FlashGenericFailure, "Something went wrong, please try again")
		}
	}

	httputil.Redirect(w, r, "/")
}

// Pick renders a randomly chosen unwatched movie
// GET /pick
func (h *MovieHandler) Pick(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSession(r.Context())

	movie, err := h.movieService.PickUnwatched(r.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNoUnwatchedMovies) {
			h.flash(r, sess, FlashNothingToPick, "No unwatched movies to pick from")
			httputil.Redirect(w, r, "/")
			return
		}
		log.Printf("[movie] failed to pick movie for user %d: %v", sess.UserID, err)
		httputil.WriteInternalError(w, "Failed to pick a movie")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, pickView{Movie: movie})
}

func (h *MovieHandler) drainFlash(r *http.Request, sess *session.Session) map[string]string {
	flash, err := h.sessions.DrainFlash(r.Context(), sess)
	if err != nil {
		log.Printf("[movie] failed to drain flash: %v", err)
		return map[string]string{}
	}
	return flash
}

func (h *MovieHandler) flash(r *http.Request, sess *session.Session, key, message string) {
	if err := h.sessions.PushFlash(r.Context(), sess, key, message); err != nil {
		log.Printf("[movie] failed to push flash %q: %v", key, err)
	}
}

// splitGenres turns the comma-separated genre field into a list of tags.
func splitGenres(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

// fillFromDetail backfills form fields from a metadata lookup without
// overwriting anything the user typed.
func fillFromDetail(req *model.AddMovieRequest, detail *metadata.MovieDetail) {
	if strings.TrimSpace(req.Title) == "" {
		req.Title = detail.Title
	}
	if len(req.Genres) == 0 {
		req.Genres = splitGenres(detail.Genre)
	}
	if req.Plot == nil && detail.Plot != "" {
		plot := detail.Plot
		req.Plot = &plot
	}
	if req.PosterURL == nil && detail.PosterURL != "" && detail.PosterURL != "N/A" {
		poster := detail.PosterURL
		req.PosterURL = &poster
	}
}
