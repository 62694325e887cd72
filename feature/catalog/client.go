package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net"
	"net/http"
	"net/url"
	"time"

	"ygo-pipelines/core/retry"

	"go.uber.org/zap"
)

// noMatch is the API's 400 message for a filter that matches no card.
const noMatch = "No card matching your query"

// Client reads the remote card catalog. It is safe for concurrent use.
type Client struct {
	cfg    Config
	retry  retry.Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a catalog client.
func NewClient(cfg Config, retryCfg retry.Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: time.Duration(timeout) * time.Second,
	}

	return &Client{
		cfg:    cfg,
		retry:  retryCfg,
		http:   &http.Client{Transport: transport},
		logger: logger,
	}
}

// get performs a GET with retries on transient failures and returns the open
// body of a 2xx response. A 400 reporting no matching card returns a nil body.
func (c *Client) get(ctx context.Context, rawURL string, timeout time.Duration) (io.ReadCloser, context.CancelFunc, error) {
	var (
		body   io.ReadCloser
		cancel context.CancelFunc
	)

	err := retry.Do(ctx, c.retry, func(ctx context.Context, attempt int) error {
		var err error
		body, cancel, err = c.open(ctx, rawURL, timeout, attempt)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return body, cancel, nil
}

// open performs a single GET. The returned cancel func must be called once the
// body has been consumed.
func (c *Client) open(ctx context.Context, rawURL string, timeout time.Duration, attempt int) (io.ReadCloser, context.CancelFunc, error) {
	reqCtx, reqCancel := context.WithTimeout(ctx, timeout)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		reqCancel()
		return nil, nil, &FatalFetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", "application/json, image/*")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		reqCancel()
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		c.logger.Warn("Catalog request failed", zap.String("url", rawURL), zap.Int("attempt", attempt), zap.Error(err))
		return nil, nil, &TransientFetchError{URL: rawURL, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.Body, reqCancel, nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
	reqCancel()

	if resp.StatusCode == http.StatusBadRequest && bytes.Contains(msg, []byte(noMatch)) {
		return nil, func() {}, nil
	}
	if isTransientStatus(resp.StatusCode) {
		c.logger.Warn("Catalog request throttled or unavailable",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode),
			zap.Int("attempt", attempt),
		)
		return nil, nil, &TransientFetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	return nil, nil, &FatalFetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: errors.New(string(bytes.TrimSpace(msg)))}
}

// stream fetches rawURL and yields every element of the top-level "data"
// array as it is decoded. An element that does not decode into a Record is
// yielded as a *RecordError and the stream goes on.
func (c *Client) stream(ctx context.Context, rawURL string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		timeout := time.Duration(c.cfg.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 60 * time.Second
		}

		body, cancel, err := c.get(ctx, rawURL, timeout)
		if err != nil {
			yield(Record{}, err)
			return
		}
		defer cancel()
		if body == nil {
			return
		}
		defer body.Close()

		if err := decodeData(body, func(raw json.RawMessage) bool {
			var rec Record
			if err := json.Unmarshal(raw, &rec); err != nil {
				return yield(Record{}, &RecordError{ID: recordID(raw), Err: err})
			}
			return yield(rec, nil)
		}); err != nil {
			yield(Record{}, classifyDecodeError(ctx, rawURL, err))
		}
	}
}

// recordID reads the id of a record that failed to decode, if it is numeric.
func recordID(raw json.RawMessage) int {
	var head struct {
		ID int `json:"id"`
	}
	_ = json.Unmarshal(raw, &head)
	return head.ID
}

// decodeData walks {"data": [...], ...} and hands each array element to fn.
// It stops early when fn returns false.
func decodeData(r io.Reader, fn func(json.RawMessage) bool) error {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	found := false
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		if key != "data" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return err
			}
			continue
		}

		found = true
		if err := expectDelim(dec, '['); err != nil {
			return err
		}
		for dec.More() {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return err
			}
			if !fn(raw) {
				return nil
			}
		}
		if err := expectDelim(dec, ']'); err != nil {
			return err
		}
	}

	if !found {
		return errMissingData
	}
	return nil
}

var errMissingData = errors.New("response has no data array")

type syntaxError struct{ msg string }

func (e *syntaxError) Error() string { return e.msg }

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return &syntaxError{msg: fmt.Sprintf("expected %q, got %v", want, tok)}
	}
	return nil
}

// classifyDecodeError separates broken payloads (fatal) from connections that
// dropped mid-body (transient).
func classifyDecodeError(ctx context.Context, rawURL string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var (
		jsonSyntax *json.SyntaxError
		jsonType   *json.UnmarshalTypeError
		delim      *syntaxError
	)
	switch {
	case errors.As(err, &jsonSyntax), errors.As(err, &jsonType), errors.As(err, &delim),
		errors.Is(err, errMissingData), errors.Is(err, io.EOF):
		return &FatalFetchError{URL: rawURL, Err: err}
	default:
		return &TransientFetchError{URL: rawURL, Err: err}
	}
}

// endpoint builds the card info URL with the given query parameters.
func (c *Client) endpoint(params url.Values) string {
	if len(params) == 0 {
		return c.cfg.BaseURL
	}
	return c.cfg.BaseURL + "?" + params.Encode()
}
