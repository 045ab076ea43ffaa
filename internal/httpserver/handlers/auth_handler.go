package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vibecheck/internal/auth"
	"vibecheck/internal/config"
	"vibecheck/internal/models"
	"vibecheck/internal/store"
)

type registerReq struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	Email     *string `json:"email,omitempty"`
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

func Register(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" {
			respondError(w, http.StatusBadRequest, "username required")
			return
		}
		if len(req.Password) < 6 {
			respondError(w, http.StatusBadRequest, "password must be at least 6 characters")
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "hash error")
			return
		}
		u := models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			Name:         req.Name,
			AvatarURL:    req.AvatarURL,
			Bio:          req.Bio,
			IsActive:     true,
		}
		if err := db.WithContext(r.Context()).Create(&u).Error; err != nil {
			if store.IsUniqueViolation(err) {
				// observed contract: duplicates answer 400, not 409
				respondError(w, http.StatusBadRequest, "username or email already exists")
				return
			}
			lg.Errorw("register failed", "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, u)
	}
}

func Login(db *gorm.DB, lg *zap.SugaredLogger, tokens *auth.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		username := r.PostFormValue("username")
		password := r.PostFormValue("password")
		var u models.User
		if err := db.WithContext(r.Context()).First(&u, "username = ?", username).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(w, http.StatusUnauthorized, "invalid username or password")
				return
			}
			lg.Errorw("login lookup failed", "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
			respondError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		tok, err := tokens.Issue(u.Username)
		if err != nil {
			lg.Errorw("token issue failed", "error", err)
			respondError(w, http.StatusInternalServerError, "token error")
			return
		}
		respondJSON(w, map[string]string{"access_token": tok, "token_type": "bearer"})
	}
}

func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, auth.UserFromContext(r.Context()))
	}
}

// UpdateMe applies a partial profile update from multipart form data: text
// fields "name" and "bio", and an optional avatar file under the key
// "avatar" or "avatar_url". At least one field must be supplied.
func UpdateMe(db *gorm.DB, lg *zap.SugaredLogger, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		u := auth.UserFromContext(r.Context())
		updated := false
		if vals, ok := r.MultipartForm.Value["name"]; ok && len(vals) > 0 {
			u.Name = &vals[0]
			updated = true
		}
		if vals, ok := r.MultipartForm.Value["bio"]; ok && len(vals) > 0 {
			u.Bio = &vals[0]
			updated = true
		}
		file, header, err := r.FormFile("avatar")
		if err != nil {
			file, header, err = r.FormFile("avatar_url")
		}
		if err == nil {
			defer file.Close()
			if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
				lg.Errorw("create upload dir failed", "error", err)
				respondError(w, http.StatusInternalServerError, "failed to save uploaded file")
				return
			}
			// random filename avoids collisions between users
			name := uuid.NewString() + filepath.Ext(header.Filename)
			dst, err := os.Create(filepath.Join(cfg.UploadDir, name))
			if err != nil {
				lg.Errorw("create avatar file failed", "error", err)
				respondError(w, http.StatusInternalServerError, "failed to save uploaded file")
				return
			}
			if _, err := dst.ReadFrom(file); err != nil {
				dst.Close()
				lg.Errorw("write avatar file failed", "error", err)
				respondError(w, http.StatusInternalServerError, "failed to save uploaded file")
				return
			}
			dst.Close()
			url := "/static/uploads/" + name
			u.AvatarURL = &url
			updated = true
		}
		if !updated {
			respondError(w, http.StatusBadRequest, "no fields provided")
			return
		}
		if err := db.WithContext(r.Context()).Save(u).Error; err != nil {
			lg.Errorw("profile update failed", "error", err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, u)
	}
}
