package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dreamteam/ipinfo/pkg/logger"
)

// NotAvailable is how a missing IPv6 address is rendered.
const NotAvailable = "Not Available"

var (
	errMissingIP = errors.New("response has no ip field")
	errNotIPv6   = errors.New("response is not an ipv6 address")
)

// IPv6Result is the outcome of best-effort IPv6 discovery.
type IPv6Result struct {
	Addr      string
	Available bool
}

// Unavailable is the IPv6Result reported when discovery failed.
var Unavailable = IPv6Result{}

// String returns the address or NotAvailable.
func (r IPv6Result) String() string {
	if !r.Available {
		return NotAvailable
	}
	return r.Addr
}

func (r IPv6Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

type ipPayload struct {
	IP string `json:"ip"`
}

// FetchIPv4 returns the host's public IPv4 address as reported by ipify.
func (c *Client) FetchIPv4(ctx context.Context) (string, error) {
	start := time.Now()
	ip, err := c.fetchIPv4(ctx)
	c.observe(ServiceIPv4, err, time.Since(start))
	return ip, err
}

func (c *Client) fetchIPv4(ctx context.Context) (string, error) {
	status, body, err := c.get(ctx, ServiceIPv4, c.ipv4URL)
	if err != nil {
		switch kind := transportKind(err); kind {
		case KindTimeout:
			return "", &Error{Service: ServiceIPv4, Kind: kind, Msg: "Request timeout while fetching IPv4", Err: err}
		case KindConnection:
			return "", &Error{Service: ServiceIPv4, Kind: kind, Msg: "Connection error while fetching IPv4", Err: err}
		default:
			return "", &Error{Service: ServiceIPv4, Kind: kind, Msg: "Error fetching IPv4: " + err.Error(), Err: err}
		}
	}

	if status != http.StatusOK {
		return "", &Error{
			Service: ServiceIPv4,
			Kind:    KindStatus,
			Msg:     fmt.Sprintf("Failed to fetch IPv4: Status %d", status),
		}
	}

	ip, err := decodeIP(body)
	if err != nil {
		return "", &Error{Service: ServiceIPv4, Kind: KindDecode, Msg: "Error fetching IPv4: " + err.Error(), Err: err}
	}
	return ip, nil
}

// FetchIPv6 asks the dual-stack ipify endpoint for the host's address. It
// never fails: errors, non-200 answers and addresses without a colon all
// yield Unavailable.
func (c *Client) FetchIPv6(ctx context.Context) IPv6Result {
	start := time.Now()
	res, reason := c.fetchIPv6(ctx)
	c.observe(ServiceIPv6, reason, time.Since(start))
	if reason != nil {
		c.log.DebugContext(ctx, "ipv6 address unavailable", logger.Error(reason))
	}
	return res
}

func (c *Client) fetchIPv6(ctx context.Context) (IPv6Result, error) {
	status, body, err := c.get(ctx, ServiceIPv6, c.ipv6URL)
	if err != nil {
		return Unavailable, &Error{Service: ServiceIPv6, Kind: transportKind(err), Msg: err.Error(), Err: err}
	}
	if status != http.StatusOK {
		return Unavailable, &Error{Service: ServiceIPv6, Kind: KindStatus, Msg: fmt.Sprintf("status %d", status)}
	}
	ip, err := decodeIP(body)
	if err != nil {
		return Unavailable, &Error{Service: ServiceIPv6, Kind: KindDecode, Msg: err.Error(), Err: err}
	}
	// The dual-stack endpoint answers with the IPv4 address on hosts
	// without IPv6 connectivity.
	if !strings.Contains(ip, ":") {
		return Unavailable, &Error{Service: ServiceIPv6, Kind: KindNoIPv6, Msg: errNotIPv6.Error(), Err: errNotIPv6}
	}
	return IPv6Result{Addr: ip, Available: true}, nil
}

func decodeIP(body []byte) (string, error) {
	var p ipPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return "", err
	}
	if p.IP == "" {
		return "", errMissingIP
	}
	return p.IP, nil
}
