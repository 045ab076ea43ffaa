package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"vibecheck/internal/auth"
	"vibecheck/internal/store"
)

const maxPlaceNameLen = 100

type submitReportReq struct {
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
	PlaceName    string   `json:"place_name"`
	CrowdStatus  int      `json:"crowd_status"`
	DecibelLevel float64  `json:"decibel_level"`
	VibeTags     []string `json:"vibe_tags"`
}

// SubmitReport validates the payload before any store call and always takes
// the owner id from the resolved identity, never from the client.
func SubmitReport(reports *store.Reports, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitReportReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Lat == nil || req.Lon == nil {
			respondError(w, http.StatusBadRequest, "lat and lon required")
			return
		}
		if req.CrowdStatus < 1 || req.CrowdStatus > 3 {
			respondError(w, http.StatusBadRequest, "crowd_status must be between 1 and 3")
			return
		}
		if req.PlaceName == "" || utf8.RuneCountInString(req.PlaceName) > maxPlaceNameLen {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("place_name must be 1-%d characters", maxPlaceNameLen))
			return
		}
		u := auth.UserFromContext(r.Context())
		created, err := reports.Insert(r.Context(), u.ID, *req.Lat, *req.Lon, req.PlaceName, req.CrowdStatus, req.DecibelLevel, req.VibeTags)
		if err != nil {
			lg.Errorw("insert report failed", "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, created)
	}
}

// NearbyReports is public: latest report per distinct place within the
// requested radius, nearest first.
func NearbyReports(reports *store.Reports, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		lat, err := strconv.ParseFloat(q.Get("lat"), 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "lat must be a number")
			return
		}
		lon, err := strconv.ParseFloat(q.Get("lon"), 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "lon must be a number")
			return
		}
		radiusKm := 100.0
		if s := q.Get("radius_km"); s != "" {
			radiusKm, err = strconv.ParseFloat(s, 64)
			if err != nil || radiusKm <= 0 {
				respondError(w, http.StatusBadRequest, "radius_km must be a positive number")
				return
			}
		}
		rows, err := reports.FindNearby(r.Context(), lat, lon, radiusKm*1000)
		if err != nil {
			lg.Errorw("nearby query failed", "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if rows == nil {
			rows = []store.NearbyReport{}
		}
		respondJSON(w, map[string]any{
			"status":    "success",
			"count":     len(rows),
			"radius_km": radiusKm,
			"data":      rows,
		})
	}
}

func DeleteReport(reports *store.Reports, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid report id")
			return
		}
		u := auth.UserFromContext(r.Context())
		switch err := reports.Delete(r.Context(), id, u.ID); {
		case errors.Is(err, store.ErrNotFound):
			respondError(w, http.StatusNotFound, "report not found")
		case errors.Is(err, store.ErrForbidden):
			respondError(w, http.StatusForbidden, "you can only delete your own reports")
		case err != nil:
			lg.Errorw("delete report failed", "report_id", id, "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
		default:
			respondJSON(w, map[string]any{
				"status":  "success",
				"message": fmt.Sprintf("Report %d deleted successfully", id),
			})
		}
	}
}
