package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rbhz/tg-define/app/clients/counter"
	"github.com/rbhz/tg-define/app/db"
)

const testSecret = "tokentokentokentoken"

// emptyHandler is a dummy handler for testing.
type emptyHandler struct{}

func (h *emptyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {}

// ErrorStorage is a dummy storage for testing storage error handling.
type ErrorStorage struct {
	*db.InMemoryStorage
}

func (d ErrorStorage) Increment() (int64, error) {
	return 0, errors.New("test")
}

func (d ErrorStorage) Total() (int64, error) {
	return 0, errors.New("test")
}

// getTestServer returns a test server.
func getTestServer(storage db.Storage, secret string) (*httptest.Server, func()) {
	if storage == nil {
		storage = db.NewInMemoryStorage()
	}

	server := NewServer(storage, secret)
	srv := httptest.NewServer(server.router)
	return srv, srv.Close
}

// getTestJWT returns a test JWT signed with testSecret
func getTestJWT() string {
	token, _ := counter.SignToken([]byte(testSecret), time.Hour)
	return "Bearer " + token
}
