package httpgin

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	redisrepo "github.com/kirinyoku/showtime/internal/repository/redis"
)

const (
	idempotencyHeader  = "Idempotency-Key"
	idempotencyLockTTL = 60 * time.Second
)

// idemKey returns the storage key for the request's Idempotency-Key
// header, or "" when the header is absent.
func idemKey(c *gin.Context, build func(key string) string) string {
	k := strings.TrimSpace(c.GetHeader(idempotencyHeader))
	if k == "" {
		return ""
	}
	return build(k)
}

// withIdempotency runs handle once per storage key. A repeated request gets
// the saved status and body back; a request that races an unfinished one
// gets 409. Errors release the key so the client can retry.
func withIdempotency(
	c *gin.Context,
	idem *redisrepo.IdempotencyStore,
	storageKey string,
	handle func() (int, any, error),
) {
	ctx := c.Request.Context()

	if idem == nil || storageKey == "" {
		status, body, err := handle()
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(status, body)
		return
	}

	if replayIdempotent(c, idem, storageKey) {
		return
	}

	locked, err := idem.AcquireLock(ctx, storageKey, idempotencyLockTTL)
	if err != nil {
		respondErr(c, err)
		return
	}
	if !locked {
		if replayIdempotent(c, idem, storageKey) {
			return
		}
		if busy, _ := idem.IsLocked(ctx, storageKey); busy {
			c.Header("Retry-After", "1")
		}
		c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
		return
	}

	status, body, err := handle()
	if err != nil {
		_ = idem.Release(ctx, storageKey)
		respondErr(c, err)
		return
	}

	b, err := json.Marshal(body)
	if err != nil {
		_ = idem.Release(ctx, storageKey)
		respondErr(c, err)
		return
	}

	saved, _ := json.Marshal(idempotentResponse{Status: status, Body: b})
	_ = idem.SaveResult(ctx, storageKey, string(saved))

	c.Header(idempotencyHeader, strings.TrimSpace(c.GetHeader(idempotencyHeader)))
	c.Data(status, "application/json; charset=utf-8", b)
}

func replayIdempotent(c *gin.Context, idem *redisrepo.IdempotencyStore, storageKey string) bool {
	payload, ok, _ := idem.GetResult(c.Request.Context(), storageKey)
	if !ok {
		return false
	}

	var saved idempotentResponse
	if err := json.Unmarshal([]byte(payload), &saved); err != nil || saved.Status == 0 {
		return false
	}

	c.Header(idempotencyHeader, strings.TrimSpace(c.GetHeader(idempotencyHeader)))
	c.Header("Idempotent-Replayed", "true")
	c.Data(saved.Status, "application/json; charset=utf-8", saved.Body)
	return true
}
