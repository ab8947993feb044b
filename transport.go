// SPDX-License-Identifier: GPL-3.0-or-later

package dnsquery

import (
	"context"
	"errors"
	"net"
)

// DefaultMaxResponseSize is the default size of the [*UDPTransport] receive buffer.
const DefaultMaxResponseSize = 1024

// Transport exchanges raw DNS messages with a server.
type Transport interface {
	Exchange(ctx context.Context, query []byte) ([]byte, error)
}

// Dialer abstracts [*net.Dialer].
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// UDPTransport sends a query in a single datagram and returns the first
// datagram received in reply without interpreting it.
//
// Construct using [NewUDPTransport].
type UDPTransport struct {
	// Dialer is the MANDATORY dialer to use.
	Dialer Dialer

	// Endpoint is the MANDATORY server "host:port".
	Endpoint string

	// MaxResponseSize is the OPTIONAL size of the receive buffer. Larger
	// replies are truncated. Zero means [DefaultMaxResponseSize].
	MaxResponseSize int
}

var _ Transport = &UDPTransport{}

// NewUDPTransport returns a [*UDPTransport] for endpoint.
func NewUDPTransport(dialer Dialer, endpoint string) *UDPTransport {
	return &UDPTransport{
		Dialer:          dialer,
		Endpoint:        endpoint,
		MaxResponseSize: DefaultMaxResponseSize,
	}
}

// ErrEmptyResponse indicates that the server replied with an empty datagram.
var ErrEmptyResponse = errors.New("empty DNS response")

// Exchange sends query to the endpoint and waits for one datagram. The
// context deadline, if any, bounds the whole exchange.
func (t *UDPTransport) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	conn, err := t.Dialer.DialContext(ctx, "udp", t.Endpoint)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	// Unblock the read when the context is canceled without a deadline.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if _, err := conn.Write(query); err != nil {
		return nil, t.contextError(ctx, err)
	}

	size := t.MaxResponseSize
	if size <= 0 {
		size = DefaultMaxResponseSize
	}
	buf := make([]byte, size)
	count, err := conn.Read(buf)
	if err != nil {
		return nil, t.contextError(ctx, err)
	}
	if count <= 0 {
		return nil, ErrEmptyResponse
	}
	return buf[:count], nil
}

func (t *UDPTransport) contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
