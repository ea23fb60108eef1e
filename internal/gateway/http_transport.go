package gateway

import (
	"bytes"
	"context"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"io"
	"mindmate/internal/structures"
	"net/http"
	"net/url"
	"strings"
)

const maxResponseSize = 8 << 20

type dispatchRequest struct {
	Walker string         `json:"walker"`
	Ctx    map[string]any `json:"ctx"`
}

type httpTransport struct {
	client     *http.Client
	baseURL    string
	mode       string
	compressor Compressor
}

func newHTTPTransport(conf *structures.Config, compressor Compressor) *httpTransport {
	mode := conf.Backend.Transport
	if mode == "" {
		mode = TransportDispatch
	}
	return &httpTransport{
		client:     &http.Client{Timeout: conf.Backend.Timeout},
		baseURL:    strings.TrimRight(conf.Backend.BaseURL, "/"),
		mode:       mode,
		compressor: compressor,
	}
}

func (t *httpTransport) Call(ctx context.Context, operation string, payload map[string]any) ([]byte, error) {
	if payload == nil {
		payload = map[string]any{}
	}

	var (
		endpoint string
		body     any
	)
	switch t.mode {
	case TransportPath:
		endpoint = t.baseURL + "/walker/" + url.PathEscape(operation)
		body = payload
	default:
		endpoint = t.baseURL + "/api/walker"
		body = dispatchRequest{Walker: operation, Ctx: payload}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, &TransportError{Op: operation, Kind: KindClientError, Err: fmt.Errorf("unable to encode payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, &TransportError{Op: operation, Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return t.do(operation, req)
}

func (t *httpTransport) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	_, err = t.do(OpHealthCheck, req)
	return err
}

func (t *httpTransport) do(operation string, req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "zstd, gzip")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, classifyError(operation, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, classifyError(operation, err)
	}
	body, decodeErr := t.decodeBody(resp.Header.Get("Content-Encoding"), raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(operation, resp.StatusCode, errorDetail(body))
	}
	if decodeErr != nil {
		return nil, &TransportError{Op: operation, Kind: KindNetwork, Err: decodeErr}
	}
	return body, nil
}

func (t *httpTransport) decodeBody(encoding string, raw []byte) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return raw, nil
	case "zstd":
		out, err := t.compressor.Decompress(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid zstd body: %w", err)
		}
		return out, nil
	case "gzip":
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid gzip body: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(io.LimitReader(zr, maxResponseSize))
		if err != nil {
			return nil, fmt.Errorf("invalid gzip body: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}

// errorDetail pulls the provider's own error text out of a failed response.
func errorDetail(body []byte) string {
	var e struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if len(body) == 0 || json.Unmarshal(body, &e) != nil {
		return ""
	}
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
