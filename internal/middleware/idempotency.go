package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nukuldhake/Meal-Mate/pkg/logger"
	"github.com/nukuldhake/Meal-Mate/pkg/redis"
	"github.com/nukuldhake/Meal-Mate/pkg/response"
)

// IdempotencyKeyHeader carries the client's retry key on create requests
const IdempotencyKeyHeader = "X-Idempotency-Key"

const maxIdempotencyKeyLength = 128

type replayStatus string

const (
	replayProcessing replayStatus = "processing"
	replayCompleted  replayStatus = "completed"
)

// replayRecord is what Redis holds for one idempotency key
type replayRecord struct {
	Status       replayStatus `json:"status"`
	RequestHash  string       `json:"request_hash"`
	ResponseCode int          `json:"response_code,omitempty"`
	ResponseBody string       `json:"response_body,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// IdempotencyConfig holds the replay store settings
type IdempotencyConfig struct {
	KeyPrefix string
	// TTL keeps completed responses for replay
	TTL time.Duration
	// ProcessingTTL bounds how long an unfinished request blocks its key
	ProcessingTTL time.Duration
}

// DefaultIdempotencyConfig returns a short-lived replay window for network retries
func DefaultIdempotencyConfig() *IdempotencyConfig {
	return &IdempotencyConfig{
		KeyPrefix:     "mealmate:idem:",
		TTL:           5 * time.Minute,
		ProcessingTTL: 60 * time.Second,
	}
}

// Idempotency replays the stored response of a create request retried
// with the same X-Idempotency-Key. Requests without the header run normally.
type Idempotency struct {
	client goredis.Cmdable
	config *IdempotencyConfig
	log    *logger.Logger
}

// NewIdempotency creates a new Idempotency middleware factory
func NewIdempotency(client *redis.Client, config *IdempotencyConfig) *Idempotency {
	if config == nil {
		config = DefaultIdempotencyConfig()
	}
	if config.TTL <= 0 {
		config.TTL = 5 * time.Minute
	}
	if config.ProcessingTTL <= 0 {
		config.ProcessingTTL = 60 * time.Second
	}
	return &Idempotency{
		client: client.Client(),
		config: config,
		log:    logger.Get().Named("idempotency"),
	}
}

// Guard must run after the auth gate: keys are scoped to the caller.
func (i *Idempotency) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			response.Abort(c, http.StatusBadRequest, response.CodeValidation, "X-Idempotency-Key is too long")
			return
		}

		var body []byte
		if c.Request.Body != nil {
			var err error
			if body, err = io.ReadAll(c.Request.Body); err != nil {
				response.Abort(c, http.StatusBadRequest, response.CodeBadRequest, "Could not read request body")
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		ctx := c.Request.Context()
		redisKey := i.config.KeyPrefix + strconv.FormatInt(UserID(c), 10) + ":" + key
		hash := requestHash(c, body)

		record := &replayRecord{Status: replayProcessing, RequestHash: hash, CreatedAt: time.Now()}
		claimed, err := i.claim(ctx, redisKey, record)
		if err != nil {
			i.log.Warn("Idempotency store unavailable, processing request", zap.Error(err))
			c.Next()
			return
		}

		if !claimed {
			existing, err := i.load(ctx, redisKey)
			switch {
			case errors.Is(err, goredis.Nil):
				// expired between SETNX and GET
				response.Abort(c, http.StatusConflict, response.CodeInProgress, "A request with this idempotency key is already being processed")
			case err != nil:
				i.log.Warn("Idempotency record unreadable, processing request", zap.Error(err))
				c.Next()
			case existing.RequestHash != hash:
				response.Abort(c, http.StatusUnprocessableEntity, response.CodeKeyReused, "Idempotency key already used with a different request")
			case existing.Status == replayProcessing:
				response.Abort(c, http.StatusConflict, response.CodeInProgress, "A request with this idempotency key is already being processed")
			default:
				c.Header("Idempotent-Replayed", "true")
				c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
				c.Abort()
			}
			return
		}

		capture := &capturingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = capture
		c.Next()

		// Only successful responses are replayed; a failed attempt frees the key.
		status := capture.Status()
		if status < 200 || status >= 300 {
			if err := i.client.Del(context.WithoutCancel(ctx), redisKey).Err(); err != nil {
				i.log.Warn("Failed to release idempotency key", zap.Error(err))
			}
			return
		}

		record.Status = replayCompleted
		record.ResponseCode = status
		record.ResponseBody = capture.body.String()
		if err := i.save(context.WithoutCancel(ctx), redisKey, record); err != nil {
			i.log.Warn("Failed to store idempotent response", zap.Error(err))
		}
	}
}

func (i *Idempotency) claim(ctx context.Context, key string, record *replayRecord) (bool, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return false, err
	}
	return i.client.SetNX(ctx, key, data, i.config.ProcessingTTL).Result()
}

func (i *Idempotency) load(ctx context.Context, key string) (*replayRecord, error) {
	raw, err := i.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var record replayRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (i *Idempotency) save(ctx context.Context, key string, record *replayRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return i.client.Set(ctx, key, data, i.config.TTL).Err()
}

func requestHash(c *gin.Context, body []byte) string {
	h := sha256.New()
	h.Write([]byte(c.Request.Method))
	h.Write([]byte(c.Request.URL.Path))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// capturingWriter copies the response body for replay
type capturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
