// Package fixtures provides a fake placeholder API for tests. The fake serves
// a small fixed data set over httptest and records every request it receives.
package fixtures

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"postboard/internal/domain/entity"
)

// Users is the fixture user list.
var Users = []entity.User{
	{
		ID:       1,
		Name:     "Leanne Graham",
		Username: "Bret",
		Email:    "Sincere@april.biz",
		Address: entity.Address{
			Street: "Kulas Light", Suite: "Apt. 556", City: "Gwenborough", Zipcode: "92998-3874",
			Geo: entity.Geo{Lat: "-37.3159", Lng: "81.1496"},
		},
		Phone:   "1-770-736-8031 x56442",
		Website: "hildegard.org",
		Company: entity.Company{
			Name:        "Romaguera-Crona",
			CatchPhrase: "Multi-layered client-server neural-net",
			BS:          "harness real-time e-markets",
		},
	},
	{
		ID:       2,
		Name:     "Ervin Howell",
		Username: "Antonette",
		Email:    "Shanna@melissa.tv",
		Address: entity.Address{
			Street: "Victor Plains", Suite: "Suite 879", City: "Wisokyburgh", Zipcode: "90566-7771",
			Geo: entity.Geo{Lat: "-43.9509", Lng: "-34.4618"},
		},
		Phone:   "010-692-6593 x09125",
		Website: "anastasia.net",
		Company: entity.Company{
			Name:        "Deckow-Crist",
			CatchPhrase: "Proactive didactic contingency",
			BS:          "synergize scalable supply-chains",
		},
	},
}

// Posts is the fixture post list: two by user 1, one by user 2.
var Posts = []entity.Post{
	{UserID: 1, ID: 1, Title: "sunt aut facere", Body: "quia et suscipit"},
	{UserID: 1, ID: 2, Title: "qui est esse", Body: "est rerum tempore vitae"},
	{UserID: 2, ID: 3, Title: "ea molestias quasi", Body: "et iusto sed quo iure"},
}

// Comments holds two comments per fixture post.
var Comments = []entity.Comment{
	{PostID: 1, ID: 1, Name: "id labore ex et quam laborum", Email: "Eliseo@gardner.biz", Body: "laudantium enim quasi"},
	{PostID: 1, ID: 2, Name: "quo vero reiciendis velit", Email: "Jayne_Kuhic@sydney.com", Body: "est natus enim nihil"},
	{PostID: 2, ID: 3, Name: "et omnis dolorem", Email: "Presley.Mueller@myrl.com", Body: "ut voluptatem corrupti"},
	{PostID: 2, ID: 4, Name: "alias odio sit", Email: "Dallas@ole.me", Body: "expedita maiores dignissimos"},
	{PostID: 3, ID: 5, Name: "vero eaque aliquid", Email: "Lew@alysha.tv", Body: "ut dolorum nostrum"},
	{PostID: 3, ID: 6, Name: "et fugit eligendi", Email: "Hayden@althea.biz", Body: "sapiente assumenda molestiae"},
}

// PostsByUser returns the fixture posts authored by userID, never nil.
func PostsByUser(userID int) []entity.Post {
	out := []entity.Post{}
	for _, p := range Posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

// CommentsByPost returns the fixture comments on postID, never nil.
func CommentsByPost(postID int) []entity.Comment {
	out := []entity.Comment{}
	for _, c := range Comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out
}

// PlaceholderAPI is an httptest server imitating the placeholder API.
type PlaceholderAPI struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
	failures map[string]int
	delay    time.Duration
	raw      map[string]string
}

// NewPlaceholderAPI starts the fake API and closes it when t finishes.
func NewPlaceholderAPI(t testing.TB) *PlaceholderAPI {
	t.Helper()
	api := &PlaceholderAPI{
		failures: make(map[string]int),
		raw:      make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, Users)
	})
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		for _, u := range Users {
			if u.ID == id {
				writeJSON(w, u)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("{}"))
	})
	mux.HandleFunc("GET /posts", func(w http.ResponseWriter, r *http.Request) {
		userID, _ := strconv.Atoi(r.URL.Query().Get("userId"))
		writeJSON(w, PostsByUser(userID))
	})
	mux.HandleFunc("GET /posts/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		postID, _ := strconv.Atoi(r.PathValue("id"))
		writeJSON(w, CommentsByPost(postID))
	})

	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uri := r.URL.RequestURI()
		api.mu.Lock()
		api.requests = append(api.requests, uri)
		status, failing := api.failures[r.URL.Path]
		body, overridden := api.raw[r.URL.Path]
		delay := api.delay
		api.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			http.Error(w, http.StatusText(status), status)
			return
		}
		if overridden {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(api.Close)
	return api
}

// Fail makes every request for path answer with status.
func (a *PlaceholderAPI) Fail(path string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[path] = status
}

// Recover clears a failure set with Fail.
func (a *PlaceholderAPI) Recover(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.failures, path)
}

// Respond makes requests for path answer 200 with body verbatim.
func (a *PlaceholderAPI) Respond(path, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.raw[path] = body
}

// Delay holds every response for d.
func (a *PlaceholderAPI) Delay(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.delay = d
}

// Requests returns the request URIs received so far, in arrival order.
func (a *PlaceholderAPI) Requests() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.requests...)
}

// Count returns how many requests matched uri exactly.
func (a *PlaceholderAPI) Count(uri string) int {
	n := 0
	for _, r := range a.Requests() {
		if r == uri {
			n++
		}
	}
	return n
}

// Reset forgets recorded requests.
func (a *PlaceholderAPI) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
