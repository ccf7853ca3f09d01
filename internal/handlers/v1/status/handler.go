package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/carson-networks/budget-api/internal/logging"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Response is the body of GET /status.
type Response struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	DB      string `json:"db"`
	Time    string `json:"time"`
}

type Handler struct {
	DB      Pinger
	Timeout time.Duration
	now     func() time.Time
}

func NewHandler(db Pinger) Handler {
	return Handler{DB: db, Timeout: 2 * time.Second, now: time.Now}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	ctx, cancel := context.WithTimeout(req.Context(), h.Timeout)
	defer cancel()

	stopTimer := logData.AddTiming("pingMs")
	pingErr := h.DB.Ping(ctx)
	stopTimer()

	resp := Response{
		OK:      pingErr == nil,
		Service: "api",
		DB:      "connected",
		Time:    h.now().UTC().Format(time.RFC3339),
	}
	code := http.StatusOK
	if pingErr != nil {
		resp.DB = "disconnected"
		code = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		return err
	}
	return pingErr
}
