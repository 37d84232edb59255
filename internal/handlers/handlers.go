package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unisphere-app/backend/internal/auth"
	"github.com/unisphere-app/backend/internal/platformsync"
)

type Handler struct {
	db       *sql.DB
	validate *validator.Validate
	tokens   *auth.TokenManager
	rt       *realtimeHub
	sync     *platformsync.Runner
}

func New(db *sql.DB, tokens *auth.TokenManager) *Handler {
	h := &Handler{
		db:       db,
		validate: validator.New(),
		tokens:   tokens,
		rt:       newRealtimeHub(),
	}
	h.sync = &platformsync.Runner{Store: &snapshotStore{db: db}, Logger: log.Default()}
	return h
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// decodeValid decodes the body into dst and runs its validate tags.
func (h *Handler) decodeValid(r *http.Request, dst any) error {
	if err := decodeJSON(r, dst); err != nil {
		return err
	}
	return h.validate.Struct(dst)
}

// jsonb marshals an embedded sub-document for a JSONB column. Marshal errors
// are impossible for the model types stored this way.
func jsonb(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
