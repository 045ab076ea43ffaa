package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestRandomVibe(t *testing.T) {
	rec := httptest.NewRecorder()
	RandomVibe().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/vibes/random", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"success"`)
	assert.Contains(t, rec.Body.String(), `"mood"`)
}

func TestCreateVibe_InvalidCrowdStatus(t *testing.T) {
	body := `{"place_name":"Cafe X","crowd_status":0,"decibel_level":40}`
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/vibes/", strings.NewReader(body)), 7)
	rec := httptest.NewRecorder()
	CreateVibe(nil, zap.NewNop().Sugar()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func vibeRequest(method, id, body string, userID int64) *http.Request {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("{}")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/vibes/"+id, rd)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	return asUser(req, userID)
}

func vibeRows(id, ownerID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "place_name", "crowd_status", "decibel_level", "timestamp"}).
		AddRow(id, ownerID, "Cafe X", 2, 40.0, time.Now())
}

func TestUpdateVibe_NotOwner(t *testing.T) {
	db, mock, sqlDB := newTestDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "vibes"`).
		WillReturnRows(vibeRows(42, 99))

	body := `{"place_name":"Cafe X","crowd_status":2,"decibel_level":40}`
	rec := httptest.NewRecorder()
	UpdateVibe(db, zap.NewNop().Sugar()).ServeHTTP(rec, vibeRequest(http.MethodPut, "42", body, 7))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteVibe_NotFound(t *testing.T) {
	db, mock, sqlDB := newTestDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "vibes"`).
		WillReturnError(gorm.ErrRecordNotFound)

	rec := httptest.NewRecorder()
	DeleteVibe(db, zap.NewNop().Sugar()).ServeHTTP(rec, vibeRequest(http.MethodDelete, "42", "", 7))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteVibe_NotOwner(t *testing.T) {
	db, mock, sqlDB := newTestDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "vibes"`).
		WillReturnRows(vibeRows(42, 99))

	rec := httptest.NewRecorder()
	DeleteVibe(db, zap.NewNop().Sugar()).ServeHTTP(rec, vibeRequest(http.MethodDelete, "42", "", 7))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateVibe_InvalidCrowdStatus(t *testing.T) {
	body := `{"place_name":"Cafe X","crowd_status":0,"decibel_level":40}`
	rec := httptest.NewRecorder()
	UpdateVibe(nil, zap.NewNop().Sugar()).ServeHTTP(rec, vibeRequest(http.MethodPut, "42", body, 7))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "crowd_status")
}

func TestUpdateVibe_StoreErrorIs500(t *testing.T) {
	db, mock, sqlDB := newTestDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "vibes"`).
		WillReturnError(sql.ErrConnDone)

	body := `{"place_name":"Cafe X","crowd_status":2,"decibel_level":40}`
	rec := httptest.NewRecorder()
	UpdateVibe(db, zap.NewNop().Sugar()).ServeHTTP(rec, vibeRequest(http.MethodPut, "42", body, 7))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDeleteVibe_StoreErrorIs500(t *testing.T) {
	db, mock, sqlDB := newTestDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "vibes"`).
		WillReturnError(sql.ErrConnDone)

	rec := httptest.NewRecorder()
	DeleteVibe(db, zap.NewNop().Sugar()).ServeHTTP(rec, vibeRequest(http.MethodDelete, "42", "", 7))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
