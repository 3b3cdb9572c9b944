package controllers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	_ "github.com/mattn/go-sqlite3"

	"restaurant-reviews/routes"
)

// sqlite rendition of db/schema.sql for handler tests.
const testSchema = `
CREATE TABLE restaurants (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE reviews (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	restaurant_id INTEGER NOT NULL,
	rating INTEGER NOT NULL,
	review TEXT NOT NULL,
	visitor_name TEXT NOT NULL DEFAULT 'Anonymous',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// setupServer opens a per-test in-memory database and wires the full router
// against it.
func setupServer(t *testing.T) (*sql.DB, *mux.Router) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("could not open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("could not create schema: %v", err)
	}

	router := mux.NewRouter()
	routes.Register(router, db)
	return db, router
}

// doRequest runs one request through the router and decodes the response
// envelope.
func doRequest(t *testing.T, router *mux.Router, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("could not marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var envelope map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("could not decode response %q: %v", recorder.Body.String(), err)
	}
	return recorder.Code, envelope
}

func createRestaurant(t *testing.T, router *mux.Router, name string) int {
	t.Helper()
	status, envelope := doRequest(t, router, http.MethodPost, "/restaurants", map[string]interface{}{"name": name})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 creating restaurant, got %d (%v)", status, envelope)
	}
	data := envelope["data"].(map[string]interface{})
	return int(data["id"].(float64))
}

func createReview(t *testing.T, router *mux.Router, restaurantID, rating int, text string) int {
	t.Helper()
	status, envelope := doRequest(t, router, http.MethodPost, "/reviews", map[string]interface{}{
		"restaurant_id": restaurantID,
		"rating":        rating,
		"review":        text,
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 creating review, got %d (%v)", status, envelope)
	}
	data := envelope["data"].(map[string]interface{})
	return int(data["id"].(float64))
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("could not count %s rows: %v", table, err)
	}
	return n
}
