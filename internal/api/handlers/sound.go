package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/soundloop/soundloop-api/internal/api/middleware"
	"github.com/soundloop/soundloop-api/internal/domain"
	"github.com/soundloop/soundloop-api/internal/service"
)

type SoundHandler struct {
	soundService *service.SoundService
}

func NewSoundHandler(soundService *service.SoundService) *SoundHandler {
	return &SoundHandler{soundService: soundService}
}

type CreateSoundRequest struct {
	Name            string  `json:"name"`
	AudioData       string  `json:"audio_data"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type RenameSoundRequest struct {
	Name string `json:"name"`
}

// SoundSummaryResponse omits the audio payload.
type SoundSummaryResponse struct {
	SoundID         string    `json:"sound_id"`
	Name            string    `json:"name"`
	DurationSeconds float64   `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

type SoundResponse struct {
	SoundID         string    `json:"sound_id"`
	Name            string    `json:"name"`
	AudioData       string    `json:"audio_data"`
	DurationSeconds float64   `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

func newSoundSummary(sound *domain.Sound) SoundSummaryResponse {
	return SoundSummaryResponse{
		SoundID:         sound.SoundID,
		Name:            sound.Name,
		DurationSeconds: sound.DurationSeconds,
		CreatedAt:       sound.CreatedAt,
	}
}

func (h *SoundHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sounds, err := h.soundService.List(r.Context(), user.UserID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]SoundSummaryResponse, 0, len(sounds))
	for _, sound := range sounds {
		resp = append(resp, newSoundSummary(sound))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *SoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	soundID := chi.URLParam(r, "id")
	sound, err := h.soundService.Get(r.Context(), soundID, user.UserID)
	if err != nil {
		if errors.Is(err, service.ErrSoundNotFound) {
			http.Error(w, "Sound not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := SoundResponse{
		SoundID:         sound.SoundID,
		Name:            sound.Name,
		AudioData:       sound.AudioData,
		DurationSeconds: sound.DurationSeconds,
		CreatedAt:       sound.CreatedAt,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *SoundHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateSoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.AudioData == "" || req.DurationSeconds <= 0 {
		http.Error(w, "Name, audio data and a positive duration are required", http.StatusBadRequest)
		return
	}

	sound, err := h.soundService.Create(r.Context(), user, service.CreateSoundInput{
		Name:            req.Name,
		AudioData:       req.AudioData,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSoundLimitReached) {
			http.Error(w, soundLimitMessage(user.IsPremium), http.StatusForbidden)
			return
		}
		if errors.Is(err, domain.ErrDurationExceeded) {
			http.Error(w, durationLimitMessage(user.IsPremium), http.StatusForbidden)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newSoundSummary(sound))
}

func (h *SoundHandler) Rename(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req RenameSoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	soundID := chi.URLParam(r, "id")
	if err := h.soundService.Rename(r.Context(), soundID, user.UserID, req.Name); err != nil {
		if errors.Is(err, service.ErrSoundNotFound) {
			http.Error(w, "Sound not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Sound updated"})
}

func (h *SoundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	soundID := chi.URLParam(r, "id")
	if err := h.soundService.Delete(r.Context(), soundID, user.UserID); err != nil {
		if errors.Is(err, service.ErrSoundNotFound) {
			http.Error(w, "Sound not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Sound deleted"})
}

func soundLimitMessage(isPremium bool) string {
	if isPremium {
		return "Sound limit reached. Maximum sounds reached."
	}
	return "Sound limit reached. Upgrade to premium for more sounds."
}

func durationLimitMessage(isPremium bool) string {
	quota := domain.QuotaFor(isPremium)
	maxMinutes := int(quota.MaxDurationSeconds) / 60
	if isPremium {
		return fmt.Sprintf("Sound duration exceeds %d minute limit.", maxMinutes)
	}
	return fmt.Sprintf("Sound duration exceeds %d minute limit. Upgrade to premium for 30 minute sounds.", maxMinutes)
}
