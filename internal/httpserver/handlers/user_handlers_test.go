package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vibecheck/internal/config"
)

func userRequest(method, id, body string) *http.Request {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("{}")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/users/"+id, rd)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetUser_NotFound(t *testing.T) {
	db, mock, sqlDB := newTestDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnError(gorm.ErrRecordNotFound)

	rec := httptest.NewRecorder()
	GetUser(db, zap.NewNop().Sugar(), config.Config{}).
		ServeHTTP(rec, userRequest(http.MethodGet, "42", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUser_StoreErrorIs500(t *testing.T) {
	db, mock, sqlDB := newTestDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnError(sql.ErrConnDone)

	rec := httptest.NewRecorder()
	GetUser(db, zap.NewNop().Sugar(), config.Config{}).
		ServeHTTP(rec, userRequest(http.MethodGet, "42", ""))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	db, mock, sqlDB := newTestDB(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	mock.ExpectRollback()

	rec := httptest.NewRecorder()
	body := `{"username":"alice","password":"secret1"}`
	CreateUser(db, zap.NewNop().Sugar(), config.Config{}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}
