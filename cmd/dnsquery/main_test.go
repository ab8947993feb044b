// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

// transportFunc adapts a function to [dnsquery.Transport].
type transportFunc func(ctx context.Context, query []byte) ([]byte, error)

func (f transportFunc) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	return f(ctx, query)
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestExchange(t *testing.T) {
	var logs bytes.Buffer
	reply := []byte{0xde, 0xad, 0xbe, 0xef}
	txp := transportFunc(func(ctx context.Context, query []byte) ([]byte, error) {
		_, ok := ctx.Deadline()
		require.True(t, ok)

		msg := new(dns.Msg)
		require.NoError(t, msg.Unpack(query))
		require.Len(t, msg.Question, 1)
		require.Equal(t, "xn--bcher-kva.example.", msg.Question[0].Name)
		require.Equal(t, dns.TypeA, msg.Question[0].Qtype)
		require.True(t, msg.RecursionDesired)
		return reply, nil
	})

	cfg := config{Name: "bücher.example", Server: "127.0.0.1:53", Timeout: time.Second}
	rawResp, err := exchange(context.Background(), newTestLogger(&logs), txp, cfg)
	require.NoError(t, err)
	require.Equal(t, reply, rawResp)
	require.Contains(t, logs.String(), "QUESTION SECTION")
	require.Contains(t, logs.String(), "msg=reply size=4")
}

func TestExchangeInvalidName(t *testing.T) {
	var logs bytes.Buffer
	txp := transportFunc(func(ctx context.Context, query []byte) ([]byte, error) {
		t.Fatal("should not be called")
		return nil, nil
	})

	cfg := config{Name: "bad name.example", Server: "127.0.0.1:53"}
	_, err := exchange(context.Background(), newTestLogger(&logs), txp, cfg)
	require.ErrorContains(t, err, "invalid name")
}

func TestExchangeTransportError(t *testing.T) {
	var logs bytes.Buffer
	expected := errors.New("mocked exchange error")
	txp := transportFunc(func(ctx context.Context, query []byte) ([]byte, error) {
		return nil, expected
	})

	cfg := config{Name: "example.com", Server: "127.0.0.1:53"}
	rawResp, err := exchange(context.Background(), newTestLogger(&logs), txp, cfg)
	require.ErrorIs(t, err, expected)
	require.Nil(t, rawResp)
	require.Contains(t, logs.String(), "level=ERROR")
}
