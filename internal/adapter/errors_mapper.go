package adapter

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/tim-encrypted-storage/models"
)

// mapHTTPError converts a completed response into a key service error.
// 204 is reported as KeyLocked even though it is a 2xx status: the service
// answers a locked key with an empty 204.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(status)
	}

	switch status {
	case http.StatusNoContent, http.StatusForbidden:
		return models.NewKeyServiceError(models.KeyLocked, fmt.Errorf("http %d: %s", status, body))
	case http.StatusUnauthorized:
		return models.NewKeyServiceError(models.BadPassword, fmt.Errorf("http %d: %s", status, body))
	case http.StatusNotFound:
		return models.NewKeyServiceError(models.KeyMissing, fmt.Errorf("http %d: %s", status, body))
	case http.StatusInternalServerError:
		return models.NewKeyServiceError(models.UnableToCreateKey, fmt.Errorf("http %d: %s", status, body))
	}

	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	return models.NewKeyServiceError(models.UnknownKeyServiceFailure,
		fmt.Errorf("%w: http %d: %s", ErrUnexpectedStatus, status, body))
}

// mapTransportError classifies an error returned before any response was
// received.
func mapTransportError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return models.NewKeyServiceError(models.UnknownKeyServiceFailure, fmt.Errorf("%w: %w", ErrRequestCancelled, err))
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewKeyServiceError(models.BadInternet, fmt.Errorf("%w: %w", ErrTransportFailure, err))
	}
	if isConnectionFailure(err) {
		return models.NewKeyServiceError(models.PotentiallyNoInternet, fmt.Errorf("%w: %w", ErrConnectionFailure, err))
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.NewKeyServiceError(models.BadInternet, fmt.Errorf("%w: %w", ErrTransportFailure, err))
	}
	if isTLSFailure(err) {
		return models.NewKeyServiceError(models.BadInternet, fmt.Errorf("%w: %w", ErrTransportFailure, err))
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return models.NewKeyServiceError(models.BadInternet, fmt.Errorf("%w: %w", ErrTransportFailure, err))
	}

	return models.NewKeyServiceError(models.UnknownKeyServiceFailure, err)
}

func isConnectionFailure(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	for _, errno := range []syscall.Errno{
		syscall.ECONNREFUSED,
		syscall.ECONNRESET,
		syscall.ENETUNREACH,
		syscall.EHOSTUNREACH,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

func isTLSFailure(err error) bool {
	var (
		recordErr  tls.RecordHeaderError
		unknownCA  x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		invalidErr x509.CertificateInvalidError
		verifyErr  *tls.CertificateVerificationError
	)
	return errors.As(err, &recordErr) ||
		errors.As(err, &unknownCA) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &invalidErr) ||
		errors.As(err, &verifyErr)
}
