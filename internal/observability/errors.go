package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/baxromumarov/job-capture/internal/httpx"
)

// Error classes reported in capture results and the error counters.
const (
	ErrorNotFound  = "not_found"
	ErrorRateLimit = "rate_limit"
	ErrorRobots    = "robots"
	ErrorTimeout   = "timeout"
	ErrorNetwork   = "network"
	ErrorParsing   = "parsing"
	ErrorStore     = "store"
	ErrorUnknown   = "unknown"
)

// ClassifyError maps a capture failure to one of the error classes.
// Page status wins over everything else, so a 404 behind a wrapped
// error is still not_found.
func ClassifyError(err error) string {
	if err == nil {
		return ErrorUnknown
	}

	var fe *httpx.FetchError
	if errors.As(err, &fe) {
		switch fe.Status {
		case http.StatusNotFound, http.StatusGone:
			return ErrorNotFound
		case http.StatusTooManyRequests:
			return ErrorRateLimit
		}
		return ErrorNetwork
	}

	var netErr net.Error
	switch {
	case errors.Is(err, httpx.ErrBlockedByRobots):
		return ErrorRobots
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrorTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return ErrorTimeout
	case errors.As(err, &netErr):
		return ErrorNetwork
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"parse failed", "decode failed", "unmarshal", "invalid character"} {
		if strings.Contains(msg, marker) {
			return ErrorParsing
		}
	}
	return ErrorUnknown
}
