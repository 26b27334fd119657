package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/salon-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

// decodeJSON reads the request body into dst, answering 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// pathUUID reads an identifier path parameter.
func pathUUID(r *http.Request, key string) (string, error) {
	id := chi.URLParam(r, key)
	if !validator.IsValidUUID(id) {
		return "", validator.Single(key, key+" must be a valid UUID")
	}
	return id, nil
}

// urlUUID is pathUUID for handlers, answering 422 itself on a malformed identifier.
func urlUUID(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	id, err := pathUUID(r, key)
	if err != nil {
		response.HandleError(w, err)
		return "", false
	}
	return id, true
}

// queryDate parses an optional YYYY-MM-DD query parameter in the server time zone.
func queryDate(r *http.Request, key string) (*time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, v, time.Local)
	if err != nil {
		return nil, validator.Single(key, key+" must be in YYYY-MM-DD format")
	}
	return &t, nil
}

// queryInt parses an optional integer query parameter, returning def when absent.
func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, validator.Single(key, key+" must be an integer")
	}
	return n, nil
}

// queryUUID reads an optional identifier query parameter.
func queryUUID(r *http.Request, key string) (*string, error) {
	v := queryString(r, key)
	if v != nil && !validator.IsValidUUID(*v) {
		return nil, validator.Single(key, key+" must be a valid UUID")
	}
	return v, nil
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryDateRange reads start_date and end_date; end_date covers its whole day.
func queryDateRange(r *http.Request) (start, end *time.Time, err error) {
	if start, err = queryDate(r, "start_date"); err != nil {
		return nil, nil, err
	}
	if end, err = queryDate(r, "end_date"); err != nil {
		return nil, nil, err
	}
	if end != nil {
		e := end.AddDate(0, 0, 1).Add(-time.Millisecond)
		end = &e
	}
	return start, end, nil
}
