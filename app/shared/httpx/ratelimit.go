package httpx

import (
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// pruneAbove is the bucket count past which idle buckets are dropped.
	pruneAbove = 500
	// idleTTL is how long a bucket may go unused before it can be dropped.
	idleTTL = 10 * time.Minute
)

// KeyFunc names the bucket a request is charged against.
type KeyFunc func(r *http.Request) string

// ClientHost keys requests by the host part of RemoteAddr. Run middleware.RealIP
// first so proxied clients get their own bucket.
func ClientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type bucket struct {
	limiter *rate.Limiter
	used    time.Time
}

// ClientLimiter holds one token bucket per key.
type ClientLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewClientLimiter allows each key limit requests per second with bursts of burst.
func NewClientLimiter(limit rate.Limit, burst int) *ClientLimiter {
	return &ClientLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		burst:   burst,
		now:     time.Now,
	}
}

// Take charges one request to key. When the bucket is empty nothing is charged and
// wait is how long until a token frees up.
func (c *ClientLimiter) Take(key string) (wait time.Duration, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.buckets) > pruneAbove {
		c.prune(now.Add(-idleTTL))
	}

	b, found := c.buckets[key]
	if !found {
		b = &bucket{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.buckets[key] = b
	}
	b.used = now

	res := b.limiter.ReserveN(now, 1)
	if !res.OK() {
		return time.Second, false
	}
	if d := res.DelayFrom(now); d > 0 {
		res.CancelAt(now)
		return d, false
	}
	return 0, true
}

func (c *ClientLimiter) prune(cutoff time.Time) {
	for k, b := range c.buckets {
		if b.used.Before(cutoff) {
			delete(c.buckets, k)
		}
	}
}

// Len returns the number of live buckets.
func (c *ClientLimiter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buckets)
}

// RateLimitOptions tunes RateLimitMiddleware. The zero value keys by ClientHost and
// exempts nobody.
type RateLimitOptions struct {
	Key    KeyFunc
	Exempt []netip.Prefix
}

func (o RateLimitOptions) exempt(host string) bool {
	if len(o.Exempt) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range o.Exempt {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// RateLimitMiddleware answers over-budget requests with a JSON 429 and a Retry-After
// in whole seconds. Requests from an exempt network skip the limiter entirely.
func RateLimitMiddleware(limiter *ClientLimiter, opts RateLimitOptions) func(http.Handler) http.Handler {
	key := opts.Key
	if key == nil {
		key = ClientHost
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.exempt(ClientHost(r)) {
				next.ServeHTTP(w, r)
				return
			}
			if wait, ok := limiter.Take(key(r)); !ok {
				secs := int(math.Ceil(wait.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				WriteMessage(w, http.StatusTooManyRequests, false, MessageTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ParsePrefixes reads CIDR blocks and bare addresses, which become single-host
// prefixes. Entries that parse as neither are returned in bad.
func ParsePrefixes(entries []string) (prefixes []netip.Prefix, bad []string) {
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if p, err := netip.ParsePrefix(e); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(e); err == nil {
			a = a.Unmap()
			prefixes = append(prefixes, netip.PrefixFrom(a, a.BitLen()))
			continue
		}
		bad = append(bad, e)
	}
	return prefixes, bad
}
