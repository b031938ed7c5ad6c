package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"slreload/internal/provider"
)

// TransportFailure names how a request to the SoftLayer API failed before
// any response came back.
type TransportFailure string

const (
	FailureTLS         TransportFailure = "TLS error"
	FailureDNS         TransportFailure = "DNS lookup failed"
	FailureTimeout     TransportFailure = "Request timed out"
	FailureUnreachable TransportFailure = "Network error"
	FailureOther       TransportFailure = "Connection error"
)

var failureHints = map[TransportFailure]string{
	FailureTLS:         "Check that softlayer.endpoint points at an https URL with a valid certificate.",
	FailureDNS:         "Check network access to the API endpoint (softlayer.endpoint or SL_API_ENDPOINT).",
	FailureUnreachable: "Check network access to the API endpoint (softlayer.endpoint or SL_API_ENDPOINT).",
	FailureTimeout:     "Raise softlayer.timeout or retry later.",
}

// failureChecks is tried in order; the first match wins.
var failureChecks = []struct {
	failure TransportFailure
	match   func(error) bool
}{
	{FailureTLS, isTLSFailure},
	{FailureDNS, func(err error) bool {
		var dnsErr *net.DNSError
		return errors.As(err, &dnsErr)
	}},
	{FailureTimeout, func(err error) bool {
		var netErr net.Error
		return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
	}},
	{FailureUnreachable, isUnreachable},
}

// TransportError reports that the SoftLayer API could not be reached.
type TransportError struct {
	Endpoint string
	Failure  TransportFailure
	Err      error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s talking to %s: %v", e.Failure, e.Endpoint, e.Err)
	if hint := failureHints[e.Failure]; hint != "" {
		msg += "\n" + hint
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// WrapTransportError turns a failure to reach endpoint into a
// *TransportError. Provider-reported failures, cancellations and errors
// that did not come from the HTTP transport are returned unchanged.
func WrapTransportError(err error, endpoint string) error {
	if err == nil {
		return nil
	}
	if _, ok := provider.AsAPIError(err); ok || errors.Is(err, context.Canceled) {
		return err
	}
	var urlErr *url.Error
	var netErr net.Error
	if !errors.As(err, &urlErr) && !errors.As(err, &netErr) {
		return err
	}
	return &TransportError{Endpoint: endpoint, Failure: classifyTransport(err), Err: err}
}

func classifyTransport(err error) TransportFailure {
	for _, c := range failureChecks {
		if c.match(err) {
			return c.failure
		}
	}
	return FailureOther
}

func isTLSFailure(err error) bool {
	var verifyErr *tls.CertificateVerificationError
	var recordErr tls.RecordHeaderError
	var alert tls.AlertError
	var authorityErr x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	var invalidErr x509.CertificateInvalidError
	if errors.As(err, &verifyErr) || errors.As(err, &recordErr) || errors.As(err, &alert) ||
		errors.As(err, &authorityErr) || errors.As(err, &hostErr) || errors.As(err, &invalidErr) {
		return true
	}
	// Handshake failures often arrive flattened into a string.
	msg := err.Error()
	return strings.Contains(msg, "x509: ") || strings.Contains(msg, "tls: ")
}

func isUnreachable(err error) bool {
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.EHOSTUNREACH, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
