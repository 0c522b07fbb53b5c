package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/soyRex-codes/mybank/internal/infrastructure/metrics"
	"github.com/soyRex-codes/mybank/internal/usecase"
)

const idempotencyKeyHeader = "Idempotency-Key"

// pendingMarker reserves a key while the first request is in flight.
const pendingMarker = "__pending__"

// storedResponse is the serialized form of a completed response.
type storedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// responseRecorder buffers the response so it can be replayed later.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated
// Idempotency-Key instead of re-executing the handler. Only successful
// responses are stored. Requests without the header pass through.
func Idempotency(store usecase.IdempotencyStore, ttl time.Duration, m *metrics.Metrics, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotencyKeyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			existing, isNew, err := store.CheckAndSet(r.Context(), key, pendingMarker, ttl)
			if err != nil {
				logger.Warn().Err(err).Msg("idempotency store unavailable, executing request")
				next.ServeHTTP(w, r)
				return
			}

			if !isNew {
				if existing == pendingMarker {
					writeConflict(w, "request with this idempotency key is still in progress")
					return
				}

				var stored storedResponse
				if err := json.Unmarshal([]byte(existing), &stored); err != nil {
					logger.Warn().Err(err).Str("key", key).Msg("corrupt idempotency record, executing request")
					next.ServeHTTP(w, r)
					return
				}

				if m != nil {
					m.IdempotentReplays.Inc()
				}
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotency-Replay", "true")
				w.WriteHeader(stored.Status)
				_, _ = w.Write([]byte(stored.Body))
				return
			}

			recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if recorder.status >= 200 && recorder.status < 300 {
				payload, err := json.Marshal(storedResponse{
					Status: recorder.status,
					Body:   recorder.body.String(),
				})
				if err == nil {
					err = store.Update(r.Context(), key, string(payload), ttl)
				}
				if err != nil {
					logger.Warn().Err(err).Str("key", key).Msg("failed to store idempotent response")
				}
				return
			}

			// Release the reservation so a failed request can be retried.
			if err := store.Delete(r.Context(), key); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("failed to release idempotency key")
			}
		})
	}
}

func writeConflict(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusConflict)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "conflict",
		"message": message,
	})
}
