package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vibecheck/internal/auth"
	"vibecheck/internal/models"
)

type mockVibe struct {
	Mood        string `json:"mood"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

var mockVibes = []mockVibe{
	{"Calm & Cozy", "🧘‍♂️", "Peaceful energy around you."},
	{"Busy & Buzzing", "🚀", "The area is full of energy and activity — stay alert!"},
	{"Lively & Fun", "🎉", "People are having a good time nearby."},
	{"Focused & Chill", "🎧", "A quiet, productive vibe — great for work or study."},
	{"Romantic & Warm", "💞", "Love is in the air!"},
}

func RandomVibe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, map[string]any{
			"status": "success",
			"vibe":   mockVibes[rand.Intn(len(mockVibes))],
		})
	}
}

type vibeReq struct {
	PlaceName    string   `json:"place_name"`
	CrowdStatus  int      `json:"crowd_status"`
	DecibelLevel float64  `json:"decibel_level"`
	VibeTags     []string `json:"vibe_tags"`
}

func CreateVibe(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vibeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.CrowdStatus < 1 || req.CrowdStatus > 3 {
			respondError(w, http.StatusBadRequest, "crowd_status must be between 1 and 3")
			return
		}
		u := auth.UserFromContext(r.Context())
		v := models.Vibe{
			UserID:       &u.ID,
			PlaceName:    req.PlaceName,
			CrowdStatus:  req.CrowdStatus,
			DecibelLevel: req.DecibelLevel,
			VibeTags:     req.VibeTags,
		}
		if err := db.WithContext(r.Context()).Create(&v).Error; err != nil {
			lg.Errorw("create vibe failed", "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, v)
	}
}

func ListVibes(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		skip, _ := strconv.Atoi(q.Get("skip"))
		if skip < 0 {
			skip = 0
		}
		limit, err := strconv.Atoi(q.Get("limit"))
		if err != nil || limit <= 0 || limit > 100 {
			limit = 10
		}
		tx := db.WithContext(r.Context()).Model(&models.Vibe{})
		if uid := q.Get("user_id"); uid != "" {
			tx = tx.Where("user_id = ?", uid)
		}
		if place := q.Get("place"); place != "" {
			tx = tx.Where("place_name ILIKE ?", "%"+place+"%")
		}
		var vibes []models.Vibe
		if err := tx.Offset(skip).Limit(limit).Find(&vibes).Error; err != nil {
			lg.Errorw("list vibes failed", "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, vibes)
	}
}

func UpdateVibe(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req vibeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.CrowdStatus < 1 || req.CrowdStatus > 3 {
			respondError(w, http.StatusBadRequest, "crowd_status must be between 1 and 3")
			return
		}
		var v models.Vibe
		if err := db.WithContext(r.Context()).First(&v, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, http.StatusNotFound, "vibe not found")
				return
			}
			lg.Errorw("update vibe lookup failed", "vibe_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		u := auth.UserFromContext(r.Context())
		if v.UserID == nil || *v.UserID != u.ID {
			respondError(w, http.StatusForbidden, "you can only edit your own vibes")
			return
		}
		v.PlaceName = req.PlaceName
		v.CrowdStatus = req.CrowdStatus
		v.DecibelLevel = req.DecibelLevel
		v.VibeTags = req.VibeTags
		if err := db.WithContext(r.Context()).Save(&v).Error; err != nil {
			lg.Errorw("update vibe failed", "vibe_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, v)
	}
}

func DeleteVibe(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var v models.Vibe
		if err := db.WithContext(r.Context()).First(&v, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, http.StatusNotFound, "vibe not found")
				return
			}
			lg.Errorw("delete vibe lookup failed", "vibe_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		u := auth.UserFromContext(r.Context())
		if v.UserID == nil || *v.UserID != u.ID {
			respondError(w, http.StatusForbidden, "you can only delete your own vibes")
			return
		}
		if err := db.WithContext(r.Context()).Delete(&v).Error; err != nil {
			lg.Errorw("delete vibe failed", "vibe_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("Vibe %s deleted successfully", id),
		})
	}
}
