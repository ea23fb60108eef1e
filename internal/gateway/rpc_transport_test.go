package gateway

import (
	"context"
	"mindmate/internal/models"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{}

// rpcServer answers every request frame with reply(req).
func rpcServer(t *testing.T, reply func(req rpcRequest) any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rpc" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req rpcRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				return
			}
			resp := reply(req)
			if resp == nil {
				continue
			}
			if err := conn.WriteJSON(resp); err != nil {
				return
			}
		}
	}))
}

func TestRPCURL(t *testing.T) {
	u, err := rpcURL("http://localhost:5000", "/rpc")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:5000/rpc", u)

	u, err = rpcURL("https://api.example.com/base/", "jac")
	require.NoError(t, err)
	assert.Equal(t, "wss://api.example.com/base/jac", u)

	_, err = rpcURL("ftp://x", "/rpc")
	assert.Error(t, err)
}

func TestRPCTransport_RoundTrip(t *testing.T) {
	var got rpcRequest
	srv := rpcServer(t, func(req rpcRequest) any {
		got = req
		return map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  map[string]any{"reports": []any{map[string]any{"trend": "improving"}}},
		}
	})
	defer srv.Close()

	gw := newTestGateway(t, srv.URL, TransportRPC)
	raw, err := gw.Invoke(context.Background(), OpCalculateEmotionalTrends, map[string]any{"user_id": "u", "lookback_days": 14})
	require.NoError(t, err)

	assert.Equal(t, "2.0", got.JSONRPC)
	assert.Equal(t, OpCalculateEmotionalTrends, got.Method)
	assert.Equal(t, "u", got.Params["user_id"])
	assert.NotEmpty(t, got.ID)

	trend, _ := raw.Get("trend")
	assert.Equal(t, "improving", trend)
}

func TestRPCTransport_SkipsForeignFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		var req rpcRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		_ = conn.WriteJSON(map[string]any{"jsonrpc": "2.0", "method": "progress"})
		_ = conn.WriteJSON(map[string]any{"jsonrpc": "2.0", "id": "other", "result": map[string]any{"x": 1}})
		_ = conn.WriteJSON(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": map[string]any{"message": "mine"}})
	}))
	defer srv.Close()

	raw, err := newTestGateway(t, srv.URL, TransportRPC).Invoke(context.Background(), OpGenerateSupportMessage, nil)
	require.NoError(t, err)
	msg, _ := raw.Get("message")
	assert.Equal(t, "mine", msg)
}

func TestRPCTransport_ErrorCodes(t *testing.T) {
	tests := []struct {
		code   int
		kind   ErrorKind
		status int
	}{
		{-32601, KindClientError, http.StatusNotFound},
		{-32602, KindClientError, http.StatusBadRequest},
		{-32603, KindServerError, http.StatusInternalServerError},
		{503, KindServerError, 503},
	}
	for _, tt := range tests {
		srv := rpcServer(t, func(req rpcRequest) any {
			return map[string]any{"jsonrpc": "2.0", "id": req.ID, "error": map[string]any{"code": tt.code, "message": "nope"}}
		})
		_, err := newTestGateway(t, srv.URL, TransportRPC).Invoke(context.Background(), OpLogMood, nil)
		srv.Close()

		var te *TransportError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, tt.kind, te.Kind, "code %d", tt.code)
		assert.Equal(t, tt.status, te.Status, "code %d", tt.code)
	}
}

func TestRPCTransport_ScalarResultWrapped(t *testing.T) {
	srv := rpcServer(t, func(req rpcRequest) any {
		return map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": "Inhale for four"}
	})
	defer srv.Close()

	raw, err := newTestGateway(t, srv.URL, TransportRPC).Invoke(context.Background(), OpGenerateBreathingExercise, nil)
	require.NoError(t, err)
	res, _ := raw.Get("result")
	assert.Equal(t, "Inhale for four", res)
}

func TestRPCTransport_Timeout(t *testing.T) {
	srv := rpcServer(t, func(req rpcRequest) any { return nil })
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestGateway(t, srv.URL, TransportRPC).Invoke(ctx, OpGetWeeklySummary, nil)
	assert.True(t, IsTransportError(err, KindTimeout), "got %v", err)
}

func TestRPCTransport_HandshakeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestGateway(t, srv.URL, TransportRPC).Invoke(context.Background(), OpLogMood, nil)
	assert.True(t, IsTransportError(err, KindClientError), "got %v", err)
}

func TestRPCTransport_Health(t *testing.T) {
	srv := rpcServer(t, func(req rpcRequest) any {
		if req.Method != OpHealthCheck {
			return nil
		}
		return map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": map[string]any{"status": "ok"}}
	})
	assert.Equal(t, models.HealthOK, newTestGateway(t, srv.URL, TransportRPC).Health(context.Background()))

	url := srv.URL
	srv.Close()
	assert.Equal(t, models.HealthOffline, newTestGateway(t, url, TransportRPC).Health(context.Background()))
}
