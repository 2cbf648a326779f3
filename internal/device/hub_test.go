package device

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivapos/catalog-service/internal/auth"
	"github.com/nivapos/catalog-service/internal/pkg/logger"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(logger.NewNop())
	mux := http.NewServeMux()
	hub.Register(mux)
	srv := httptest.NewServer(auth.Middleware(mux))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, merchantID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/devices/ws"
	header := http.Header{"X-Merchant-ID": []string{merchantID}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, merchantID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount(merchantID) != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients for %s, have %d", want, merchantID, hub.ClientCount(merchantID))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPublishReachesMerchantClients(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv, "m-1")
	waitForClients(t, hub, "m-1", 1)

	hub.Publish("m-1", map[string]string{"event_type": "drawer_open"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event map[string]string
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "drawer_open", event["event_type"])
}

func TestPublishIsScopedToMerchant(t *testing.T) {
	hub, srv := newTestServer(t)
	other := dial(t, srv, "m-2")
	waitForClients(t, hub, "m-2", 1)

	hub.Publish("m-1", map[string]string{"event_type": "drawer_open"})

	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "client of another merchant must not receive the event")
}

func TestStatusEndpointFansOut(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv, "m-1")
	waitForClients(t, hub, "m-1", 1)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/devices/status",
		strings.NewReader(`{"device_id":"prn-1","kind":"printer","status":"offline"}`))
	require.NoError(t, err)
	req.Header.Set("X-Merchant-ID", "m-1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "device_status", event["event_type"])
	assert.Equal(t, "prn-1", event["device_id"])
	assert.Equal(t, "offline", event["status"])
}

func TestStatusEndpointValidatesBody(t *testing.T) {
	_, srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/devices/status",
		strings.NewReader(`{"kind":"printer"}`))
	require.NoError(t, err)
	req.Header.Set("X-Merchant-ID", "m-1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPublishRacesDisconnect(t *testing.T) {
	hub, srv := newTestServer(t)

	conns := make([]*websocket.Conn, 0, 6)
	for i := 0; i < 6; i++ {
		conns = append(conns, dial(t, srv, "m-1"))
	}
	waitForClients(t, hub, "m-1", 6)

	// None of the clients read, so publishes fill the buffers and exercise
	// the slow-consumer drop while disconnects run concurrently.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			hub.Publish("m-1", map[string]string{"event_type": "drawer_open"})
		}
	}()
	for _, conn := range conns {
		conn.Close()
	}
	<-done

	waitForClients(t, hub, "m-1", 0)
}

func TestDisconnectedClientIsRemoved(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv, "m-1")
	waitForClients(t, hub, "m-1", 1)

	conn.Close()
	waitForClients(t, hub, "m-1", 0)
}
