package github

import (
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/repofleet/internal/domain/platformerr"
)

// translate maps a go-github error to a platformerr taxonomy error. It is
// the single choke point between the platform SDK's native failures and
// the rest of the application: classification is keyed purely on the HTTP
// status code, and any status outside the anticipated mapping collapses to
// KindUnexpected. A nil error translates to nil.
func translate(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)

	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) {
		return platformerr.Wrap(kindForStatus(statusOf(errResp)), err, "%s", msg)
	}

	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		// The throttling middleware should prevent these; hitting one
		// anyway is outside the anticipated set.
		return platformerr.Wrap(platformerr.KindUnexpected, err, "%s: rate limit exhausted", msg)
	}

	// Transport-level failures (DNS, TLS, connection reset) and anything
	// else the SDK surfaces.
	return platformerr.Wrap(platformerr.KindUnexpected, err, "%s", msg)
}

// statusOf extracts the HTTP status code of an error response, or 0 when
// the response is absent.
func statusOf(errResp *gh.ErrorResponse) int {
	if errResp.Response == nil {
		return 0
	}
	return errResp.Response.StatusCode
}

// kindForStatus is the anticipated status code mapping.
func kindForStatus(status int) platformerr.Kind {
	switch status {
	case http.StatusNotFound:
		return platformerr.KindNotFound
	case http.StatusUnprocessableEntity:
		return platformerr.KindAlreadyExists
	case http.StatusUnauthorized, http.StatusForbidden:
		return platformerr.KindBadCredentials
	default:
		return platformerr.KindUnexpected
	}
}
