package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Rate limiting is keyed by client IP: there is no user identity in this
// service, and one farmer's browser maps to one IP for our purposes.

type bucket struct {
	tokens     int
	lastRefill time.Time
}

var (
	rlMu        sync.Mutex
	buckets     = map[string]*bucket{}
	window      = 10 * time.Second
	capacity    = 5
	refillPerWd = capacity

	dupMu   sync.Mutex
	lastMsg = map[string]struct {
		text string
		ts   time.Time
	}{}
	dupTTL = 45 * time.Second

	cgMu       sync.Mutex
	clientSem  = map[string]chan struct{}{}
	clientConc = 2
)

func SetRateLimitConfig(win time.Duration, cap, conc int) {
	rlMu.Lock()
	window = win
	capacity = cap
	refillPerWd = cap
	rlMu.Unlock()
	cgMu.Lock()
	clientConc = conc
	cgMu.Unlock()
}

func SetDuplicateTTL(ttl time.Duration) {
	dupMu.Lock()
	dupTTL = ttl
	dupMu.Unlock()
}

func ClientIP(c *gin.Context) string {
	ip := strings.TrimSpace(c.ClientIP())
	if ip == "" {
		host, _, _ := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr))
		ip = host
	}
	return ip
}

// RateLimit enforces a token bucket per client and bounds in-flight
// submissions per client, so one stuck inference call cannot pin unlimited
// server resources for a single sender.
func RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ClientIP(c)
		now := time.Now()

		rlMu.Lock()
		b := buckets[key]
		if b == nil {
			b = &bucket{tokens: capacity, lastRefill: now}
			buckets[key] = b
		}
		if now.Sub(b.lastRefill) >= window {
			b.tokens = refillPerWd
			b.lastRefill = now
		}
		if b.tokens <= 0 {
			retry := window - now.Sub(b.lastRefill)
			rlMu.Unlock()
			if retry < time.Second {
				retry = time.Second
			}
			c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		b.tokens--
		rlMu.Unlock()

		sem := semFor(key)
		select {
		case sem <- struct{}{}:
			defer func() { <-sem }()
		default:
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many in-flight requests"})
			return
		}

		c.Next()
	}
}

func semFor(key string) chan struct{} {
	cgMu.Lock()
	defer cgMu.Unlock()
	sem := clientSem[key]
	if sem == nil || cap(sem) != clientConc {
		sem = make(chan struct{}, clientConc)
		clientSem[key] = sem
	}
	return sem
}

// ForgetDuplicate drops the recorded submission for a client. Called when an
// orchestration fails so resubmitting the same text stays possible: that is
// the client's only retry mechanism.
func ForgetDuplicate(key string) {
	dupMu.Lock()
	delete(lastMsg, key)
	dupMu.Unlock()
}

// DuplicateGuard returns false when the same client resubmits identical text
// within the duplicate window. Different text always passes.
func DuplicateGuard(key, text string) bool {
	now := time.Now()
	dupMu.Lock()
	defer dupMu.Unlock()
	if prev, ok := lastMsg[key]; ok {
		if prev.text == text && now.Sub(prev.ts) < dupTTL {
			return false
		}
	}
	lastMsg[key] = struct {
		text string
		ts   time.Time
	}{text: text, ts: now}
	return true
}
