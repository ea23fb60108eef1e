package gateway

import (
	"context"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"mindmate/internal/structures"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const rpcVersion = "2.0"

type rpcRequest struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      string         `json:"id"`
	Method  string         `json:"method"`
	Params  map[string]any `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// status maps a JSON-RPC error code onto the HTTP status classes used for
// classification. Codes already in the HTTP error range pass through.
func (e *rpcError) status() int {
	switch {
	case e.Code >= 400 && e.Code <= 599:
		return e.Code
	case e.Code == -32601:
		return http.StatusNotFound
	case e.Code == -32600, e.Code == -32602, e.Code == -32700:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// rpcTransport dials a fresh websocket per call, so concurrent calls never
// share a connection.
type rpcTransport struct {
	dialer  *websocket.Dialer
	url     string
	timeout time.Duration
}

func rpcURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if path == "" {
		path = "/rpc"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	return u.String(), nil
}

func newRPCTransport(conf *structures.Config) (*rpcTransport, error) {
	endpoint, err := rpcURL(conf.Backend.BaseURL, conf.Backend.RPCPath)
	if err != nil {
		return nil, fmt.Errorf("invalid rpc endpoint: %w", err)
	}
	return &rpcTransport{
		dialer: &websocket.Dialer{
			HandshakeTimeout:  conf.Backend.Timeout,
			EnableCompression: true,
		},
		url:     endpoint,
		timeout: conf.Backend.Timeout,
	}, nil
}

func (t *rpcTransport) Call(ctx context.Context, operation string, payload map[string]any) ([]byte, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	header := http.Header{}
	requestID := uuid.NewString()
	header.Set("X-Request-Id", requestID)

	conn, resp, err := t.dialer.DialContext(ctx, t.url, header)
	if err != nil {
		if resp != nil && resp.StatusCode >= 400 {
			return nil, statusError(operation, resp.StatusCode, "")
		}
		return nil, classifyError(operation, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
		_ = conn.SetWriteDeadline(deadline)
	}

	req := rpcRequest{JSONRPC: rpcVersion, ID: requestID, Method: operation, Params: payload}
	frame, err := json.Marshal(req)
	if err != nil {
		return nil, &TransportError{Op: operation, Kind: KindClientError, Err: fmt.Errorf("unable to encode payload: %w", err)}
	}
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return nil, t.connError(ctx, operation, err)
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return nil, t.connError(ctx, operation, err)
		}
		var res rpcResponse
		if err := json.Unmarshal(msg, &res); err != nil {
			return nil, &TransportError{Op: operation, Kind: KindNetwork, Err: fmt.Errorf("undecodable rpc frame: %w", err)}
		}
		// notifications and replies to other ids are not ours
		if res.ID != requestID {
			continue
		}
		if res.Error != nil {
			return nil, statusError(operation, res.Error.status(), res.Error.Message)
		}
		if len(res.Result) == 0 {
			return []byte("{}"), nil
		}
		return res.Result, nil
	}
}

func (t *rpcTransport) connError(ctx context.Context, operation string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return classifyError(operation, ctxErr)
	}
	return classifyError(operation, err)
}

func (t *rpcTransport) Health(ctx context.Context) error {
	_, err := t.Call(ctx, OpHealthCheck, nil)
	return err
}
