package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vibecheck/internal/auth"
	"vibecheck/internal/config"
	"vibecheck/internal/models"
	"vibecheck/internal/store"
)

// expandAvatarURL rewrites a stored relative avatar path into a public URL
// when PUBLIC_BASE_URL is configured. Absolute URLs pass through untouched.
func expandAvatarURL(cfg config.Config, u *models.User) {
	if u.AvatarURL == nil || cfg.PublicBaseURL == "" {
		return
	}
	if strings.HasPrefix(*u.AvatarURL, "http") {
		return
	}
	full := strings.TrimSuffix(cfg.PublicBaseURL, "/") + *u.AvatarURL
	u.AvatarURL = &full
}

func CreateUser(db *gorm.DB, lg *zap.SugaredLogger, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Username) == "" || len(req.Password) < 6 {
			respondError(w, http.StatusBadRequest, "username and password (min 6 chars) required")
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "hash error")
			return
		}
		u := models.User{
			Username:     strings.TrimSpace(req.Username),
			Email:        req.Email,
			PasswordHash: hash,
			Name:         req.Name,
			AvatarURL:    req.AvatarURL,
			Bio:          req.Bio,
			IsActive:     true,
		}
		if err := db.WithContext(r.Context()).Create(&u).Error; err != nil {
			if store.IsUniqueViolation(err) {
				respondError(w, http.StatusBadRequest, "username or email already exists")
				return
			}
			lg.Errorw("create user failed", "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		expandAvatarURL(cfg, &u)
		respondJSON(w, u)
	}
}

func ListUsers(db *gorm.DB, lg *zap.SugaredLogger, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		skip, _ := strconv.Atoi(q.Get("skip"))
		if skip < 0 {
			skip = 0
		}
		limit, err := strconv.Atoi(q.Get("limit"))
		if err != nil || limit <= 0 || limit > 100 {
			limit = 20
		}
		tx := db.WithContext(r.Context()).Model(&models.User{})
		if search := q.Get("search"); search != "" {
			pattern := "%" + search + "%"
			tx = tx.Where("username ILIKE ? OR email ILIKE ?", pattern, pattern)
		}
		var users []models.User
		if err := tx.Offset(skip).Limit(limit).Find(&users).Error; err != nil {
			lg.Errorw("list users failed", "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		for i := range users {
			expandAvatarURL(cfg, &users[i])
		}
		respondJSON(w, users)
	}
}

func GetUser(db *gorm.DB, lg *zap.SugaredLogger, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var u models.User
		if err := db.WithContext(r.Context()).First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, http.StatusNotFound, "user not found")
				return
			}
			lg.Errorw("get user failed", "user_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		expandAvatarURL(cfg, &u)
		respondJSON(w, u)
	}
}

func UpdateUser(db *gorm.DB, lg *zap.SugaredLogger, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req struct {
			Username  *string `json:"username"`
			Email     *string `json:"email"`
			Name      *string `json:"name"`
			Bio       *string `json:"bio"`
			AvatarURL *string `json:"avatar_url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var u models.User
		if err := db.WithContext(r.Context()).First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, http.StatusNotFound, "user not found")
				return
			}
			lg.Errorw("update user lookup failed", "user_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		updated := false
		if req.Username != nil {
			u.Username = *req.Username
			updated = true
		}
		if req.Email != nil {
			u.Email = req.Email
			updated = true
		}
		if req.Name != nil {
			u.Name = req.Name
			updated = true
		}
		if req.Bio != nil {
			u.Bio = req.Bio
			updated = true
		}
		if req.AvatarURL != nil {
			u.AvatarURL = req.AvatarURL
			updated = true
		}
		if !updated {
			respondError(w, http.StatusBadRequest, "no fields provided for update")
			return
		}
		if err := db.WithContext(r.Context()).Save(&u).Error; err != nil {
			if store.IsUniqueViolation(err) {
				respondError(w, http.StatusBadRequest, "username or email already exists")
				return
			}
			lg.Errorw("update user failed", "user_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		expandAvatarURL(cfg, &u)
		respondJSON(w, u)
	}
}

func DeleteUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var u models.User
		if err := db.WithContext(r.Context()).First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, http.StatusNotFound, "user not found")
				return
			}
			lg.Errorw("delete user lookup failed", "user_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := db.WithContext(r.Context()).Delete(&u).Error; err != nil {
			lg.Errorw("delete user failed", "user_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("User %s deleted successfully", u.Username),
		})
	}
}
