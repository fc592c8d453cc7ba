// Copyright (c) 2026 Quillside. All rights reserved.
// Author: dev@quillside.app

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Token issuer and session cookie configuration.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "quillside-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in session tokens.
	AuthIssuer = "quillside.app"

	// SessionCookieName is the name of the cookie that carries the session token.
	SessionCookieName = "access_token"

	// SessionCookiePath is the scope of the session cookie. The token gates
	// every API route, so the cookie is valid for the whole tree.
	SessionCookiePath = "/"

	// SessionTokenTTL bounds both the cookie lifetime and the embedded
	// expiry claim of the token itself.
	SessionTokenTTL = 24 * time.Hour
)

// # Login Throttling

const (
	// MaxLoginFailures is the number of consecutive failed password attempts
	// per email before logins are throttled.
	MaxLoginFailures = 10

	// LoginFailureWindow is the sliding window after which the failure
	// counter expires.
	LoginFailureWindow = 15 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

// Fields of the raw error body written before the respond envelope is
// available (panic recovery, rate limiting).
const (
	FieldError = "error"
	FieldCode  = "code"
)

// # Database Schemas

const (
	SchemaIdentity = "identity"
	SchemaContent  = "content"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixLoginFailures = "identity:login_failures:"
)
