package upstream

import (
	"context"
	"errors"
	"io"
	"net"
)

// ErrUpstream is matched by every *Error.
var ErrUpstream = errors.New("upstream request failed")

// Kind classifies upstream failures.
type Kind string

const (
	KindStatus      Kind = "status"
	KindAPI         Kind = "api"
	KindRateLimited Kind = "rate_limited"
	KindTimeout     Kind = "timeout"
	KindConnection  Kind = "connection"
	KindDecode      Kind = "decode"
	KindNoIPv6      Kind = "no_ipv6"
	KindOther       Kind = "other"
)

// Error describes a failed upstream call. Msg is safe to return to callers.
type Error struct {
	Service string
	Kind    Kind
	Msg     string
	Err     error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrUpstream
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Kind == kind
}

// transportKind classifies an error returned by http.Client.Do.
func transportKind(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindOther
	}
	var (
		opErr  *net.OpError
		dnsErr *net.DNSError
	)
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return KindConnection
	}
	return KindOther
}
