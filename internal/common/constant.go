package common

import "time"

// AuthorizationHeaderName is the HTTP header carrying the bearer credential
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a client-generated correlation id per request.
const RequestIDHeaderName = "X-Request-Id"

// TokenRefreshMargin is how long before the recorded expiry a token is
// considered "expiring soon" and eligible for a silent refresh.
const TokenRefreshMargin = 5 * time.Minute

// DefaultTokenTTL is assumed when the backend omits expires_in.
const DefaultTokenTTL = 1800 * time.Second
