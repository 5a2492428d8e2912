package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/FolioForge/portfolio-backend/internal/utils"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ListPublic returns the allow-listed settings as a flat key→value object.
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	keys := make([]string, 0, len(publicKeys))
	for k := range publicKeys {
		keys = append(keys, k)
	}

	var rows []Setting
	if err := h.db.WithContext(r.Context()).Where("key IN ?", keys).Find(&rows).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}

	out := make(map[string]string, len(rows))
	for _, s := range rows {
		out[s.Key] = s.Value
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

// ListAll returns every setting row. Admin only.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	var rows []Setting
	if err := h.db.WithContext(r.Context()).Order("key ASC").Find(&rows).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}

	utils.WriteJSON(w, http.StatusOK, rows)
}

type settingInput struct {
	Value string `json:"value"`
}

// UpsertSetting creates or replaces one setting.
func (h *Handler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var input settingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	setting := Setting{Key: key, Value: input.Value}
	if err := h.db.WithContext(r.Context()).Save(&setting).Error; err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save setting")
		return
	}

	utils.WriteJSON(w, http.StatusOK, setting)
}

func (h *Handler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	result := h.db.WithContext(r.Context()).Delete(&Setting{}, "key = ?", key)
	if result.Error != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete setting")
		return
	}
	if result.RowsAffected == 0 {
		utils.WriteError(w, http.StatusNotFound, "Setting not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
