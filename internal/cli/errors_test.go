package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slreload/internal/provider"
)

const testEndpoint = "https://api.softlayer.com/rest/v3.1"

func urlErr(err error) error {
	return &url.Error{Op: "Get", URL: testEndpoint + "/SoftLayer_Account/getVirtualGuests.json", Err: err}
}

func dialErr(errno syscall.Errno) error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", errno)}
}

func TestTransportError(t *testing.T) {
	t.Run("message names endpoint, cause and hint", func(t *testing.T) {
		err := &TransportError{Endpoint: testEndpoint, Failure: FailureTimeout, Err: context.DeadlineExceeded}
		msg := err.Error()
		assert.Contains(t, msg, "Request timed out talking to "+testEndpoint)
		assert.Contains(t, msg, "context deadline exceeded")
		assert.Contains(t, msg, "softlayer.timeout")
	})

	t.Run("other failures carry no hint", func(t *testing.T) {
		err := &TransportError{Endpoint: testEndpoint, Failure: FailureOther, Err: errors.New("boom")}
		assert.Equal(t, "Connection error talking to "+testEndpoint+": boom", err.Error())
	})

	t.Run("unwraps to the cause", func(t *testing.T) {
		err := fmt.Errorf("listing: %w", &TransportError{Failure: FailureUnreachable, Err: syscall.ECONNREFUSED})
		assert.ErrorIs(t, err, syscall.ECONNREFUSED)
	})
}

func TestClassifyTransport(t *testing.T) {
	hostErr := x509.HostnameError{Certificate: &x509.Certificate{}, Host: "api.softlayer.com"}

	tests := []struct {
		name     string
		err      error
		expected TransportFailure
	}{
		{"hostname mismatch", urlErr(hostErr), FailureTLS},
		{"verification", urlErr(&tls.CertificateVerificationError{Err: x509.UnknownAuthorityError{}}), FailureTLS},
		{"flattened handshake message", urlErr(errors.New("remote error: tls: bad certificate")), FailureTLS},
		{"dns", urlErr(&net.DNSError{Err: "no such host", Name: "api.softlayer.com", IsNotFound: true}), FailureDNS},
		{"deadline", urlErr(context.DeadlineExceeded), FailureTimeout},
		{"refused", urlErr(dialErr(syscall.ECONNREFUSED)), FailureUnreachable},
		{"reset", urlErr(os.NewSyscallError("read", syscall.ECONNRESET)), FailureUnreachable},
		{"dial without errno", urlErr(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("socket: too many open files")}), FailureUnreachable},
		{"unrecognised", urlErr(errors.New("malformed HTTP response")), FailureOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyTransport(tt.err))
		})
	}
}

func TestWrapTransportError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, WrapTransportError(nil, testEndpoint))
	})

	t.Run("api errors pass through", func(t *testing.T) {
		apiErr := &provider.APIError{Code: "SoftLayer_Exception", Message: "nope"}
		err := fmt.Errorf("listing instances: %w", apiErr)
		assert.Same(t, err, WrapTransportError(err, testEndpoint))
	})

	t.Run("cancellation passes through", func(t *testing.T) {
		err := urlErr(context.Canceled)
		assert.Equal(t, err, WrapTransportError(err, testEndpoint))
	})

	t.Run("transport errors are wrapped", func(t *testing.T) {
		err := fmt.Errorf("listing instances: %w", urlErr(dialErr(syscall.ECONNREFUSED)))

		var transportErr *TransportError
		require.ErrorAs(t, WrapTransportError(err, testEndpoint), &transportErr)
		assert.Equal(t, FailureUnreachable, transportErr.Failure)
		assert.Equal(t, testEndpoint, transportErr.Endpoint)
		assert.ErrorIs(t, transportErr, syscall.ECONNREFUSED)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		err := errors.New("decoding response: unexpected EOF")
		assert.Equal(t, err, WrapTransportError(err, testEndpoint))
	})
}
