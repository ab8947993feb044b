// SPDX-License-Identifier: GPL-3.0-or-later

// Command dnsquery sends a recursive A query over UDP and prints the raw reply.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/bassosimone/dnsquery"
	"github.com/bassosimone/runtimex"
	"golang.org/x/net/idna"
)

// config contains the command line settings.
type config struct {
	Name    string
	Server  string
	Timeout time.Duration
}

func main() {
	// (1) parse the command line
	cfg := config{}
	flag.StringVar(&cfg.Name, "name", "google.com", "domain name to query")
	flag.StringVar(&cfg.Server, "server", "8.8.8.8:53", "DNS server endpoint")
	flag.DurationVar(&cfg.Timeout, "timeout", 5*time.Second, "exchange timeout")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// (2) exchange and print the raw reply; any failure is fatal
	txp := dnsquery.NewUDPTransport(&net.Dialer{}, cfg.Server)
	rawResp := runtimex.PanicOnError1(exchange(context.Background(), logger, txp, cfg))
	fmt.Printf("%v\n", rawResp)
}

func exchange(ctx context.Context, logger *slog.Logger, txp dnsquery.Transport, cfg config) ([]byte, error) {
	punyName, err := idna.Lookup.ToASCII(cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid name %q: %w", cfg.Name, err)
	}
	query := dnsquery.NewQuery(punyName)
	rawQuery := query.Pack()
	if logger.Enabled(ctx, slog.LevelDebug) {
		if msg, err := query.NewMsg(); err == nil {
			logger.Debug("query", "msg", msg.String())
		}
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	logger.Info("exchange", "server", cfg.Server, "name", punyName, "id", query.ID, "size", len(rawQuery))
	rawResp, err := txp.Exchange(ctx, rawQuery)
	if err != nil {
		logger.Error("exchange", "server", cfg.Server, "err", err)
		return nil, err
	}
	logger.Info("reply", "size", len(rawResp))
	return rawResp, nil
}
