package device

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nivapos/catalog-service/internal/auth"
	"github.com/nivapos/catalog-service/internal/pkg/httputil"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Desktop registers connect from file:// or localhost origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func marshalEvent(event interface{}) ([]byte, error) {
	return json.Marshal(event)
}

func (h *Hub) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/devices/ws", h.HandleWS)
	mux.HandleFunc("POST /v1/devices/status", h.HandleStatus)
}

// HandleWS upgrades the connection and joins the merchant's broadcast group.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		hub:        h,
		merchantID: merchantID,
		conn:       conn,
		send:       make(chan []byte, sendBufferSize),
	}
	h.register(c)

	go c.writePump()
	go c.readPump()
}

type statusRequest struct {
	DeviceID string `json:"device_id"`
	Kind     string `json:"kind"` // printer, drawer, display
	Status   string `json:"status"`
	Detail   string `json:"detail"`
}

// HandleStatus lets a register report device state; the report is fanned out
// to the merchant's other registers.
func (h *Hub) HandleStatus(w http.ResponseWriter, r *http.Request) {
	merchantID := auth.GetMerchantID(r.Context())
	if merchantID == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing merchant context")
		return
	}

	var req statusRequest
	if err := httputil.Decode(r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DeviceID == "" || req.Status == "" {
		httputil.Error(w, http.StatusBadRequest, "device_id and status are required")
		return
	}

	h.Publish(merchantID, map[string]interface{}{
		"event_type": "device_status",
		"device_id":  req.DeviceID,
		"kind":       req.Kind,
		"status":     req.Status,
		"detail":     req.Detail,
		"reported":   time.Now().UTC(),
	})

	w.WriteHeader(http.StatusAccepted)
}
