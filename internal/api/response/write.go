package response

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/mixplugin-go/internal/model"
)

// JSON writes data as the response body. Replies are per-request game
// state and are never cached.
func JSON(w http.ResponseWriter, status int, data any) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Effects writes the effects the game server should carry out. An empty
// list is written as [] so the host never sees null.
func Effects(w http.ResponseWriter, effects []model.Effect) {
	JSON(w, http.StatusOK, EffectsFromModel(effects))
}
