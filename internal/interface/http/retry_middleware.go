package http

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/faq-autoreply/internal/infra/config"
)

const (
	retryBodyLimit     = 1 << 20
	retryAttemptHeader = "X-Retry-Attempts"
)

var errBodyTooLarge = errors.New("request body exceeds retry limit")

// withRetry replays POST requests that end in a 5xx. Reply evaluation is
// read-only apart from hit counters, so a replay is safe there; admin writes
// are listed in cfg.Exclude.
func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || isExcluded(r.URL.Path, cfg.Exclude) {
			handler.ServeHTTP(w, r)
			return
		}
		body, err := bufferBody(r)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, errBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, err.Error(), status)
			return
		}

		var last *bufferedResponse
		for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
			if attempt > 1 && !sleepCtx(r, backoff(cfg.BaseBackoff, attempt)) {
				break
			}
			last = &bufferedResponse{header: make(http.Header), status: http.StatusOK}
			replay := r.Clone(r.Context())
			replay.Body = io.NopCloser(bytes.NewReader(body))
			replay.ContentLength = int64(len(body))
			handler.ServeHTTP(last, replay)
			last.attempts = attempt

			if !transient(last.status) {
				break
			}
			if attempt < cfg.MaxAttempts {
				logger.Warn("transient failure, retrying request", "path", r.URL.Path, "status", last.status, "attempt", attempt)
			}
		}
		last.flush(w)
	})
}

// isExcluded reports whether path starts with any of the configured prefixes.
func isExcluded(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func backoff(base time.Duration, attempt int) time.Duration {
	return base << (attempt - 2)
}

// sleepCtx waits for d unless the client goes away first.
func sleepCtx(r *http.Request, d time.Duration) bool {
	if d <= 0 {
		return r.Context().Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-r.Context().Done():
		return false
	}
}

func transient(status int) bool {
	return status >= http.StatusInternalServerError && status != http.StatusNotImplemented
}

func bufferBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, retryBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > retryBodyLimit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// bufferedResponse holds one attempt's output until we know whether to keep it.
type bufferedResponse struct {
	header   http.Header
	body     bytes.Buffer
	status   int
	wrote    bool
	attempts int
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.wrote {
		return
	}
	b.status = status
	b.wrote = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.wrote = true
	return b.body.Write(p)
}

func (b *bufferedResponse) Flush() {}

func (b *bufferedResponse) flush(w http.ResponseWriter) {
	dst := w.Header()
	for key, values := range b.header {
		dst[key] = append([]string(nil), values...)
	}
	if b.attempts > 1 {
		dst.Set(retryAttemptHeader, strconv.Itoa(b.attempts))
	}
	w.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
