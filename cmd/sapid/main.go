package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArcherBullseye/Core-Smart/jsonval"
	"github.com/ArcherBullseye/Core-Smart/sapi"
	"github.com/ArcherBullseye/Core-Smart/settings"
	"github.com/ArcherBullseye/Core-Smart/ulogger"
	"github.com/ordishs/gocore"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Name used by build script for the binaries. (Please keep on single line)
const progname = "sapid"

// Version & commit strings injected at build with -ldflags -X...
var version string
var commit string

func init() {
	gocore.SetInfo(progname, version, commit)
}

func main() {
	tSettings := settings.NewSettings()
	logger := ulogger.New(progname, ulogger.WithLevel(tSettings.LogLevel))

	startTime := time.Now()

	// The client endpoint group is the only one the standalone daemon
	// serves; a node embeds the server with its blockchain, address and
	// transaction groups instead.
	clientGroup := &sapi.EndpointGroup{
		Prefix: "client",
		Endpoints: []sapi.Endpoint{
			{
				Path:   "status",
				Method: sapi.MethodGet,
				Handler: func(req *sapi.Request, _ sapi.PathParams, _ *jsonval.Value) error {
					return req.WriteOK(map[string]interface{}{
						"client":  tSettings.ClientName,
						"version": tSettings.ClientVersion,
						"uptime":  time.Since(startTime).String(),
					})
				},
			},
		},
	}

	server := sapi.NewServer(logger, tSettings, []*sapi.EndpointGroup{clientGroup})

	ctx := context.Background()

	if err := server.Init(ctx); err != nil {
		logger.Fatalf("failed to initialize SAPI server: %v", err)
	}

	if err := server.Start(ctx); err != nil {
		logger.Fatalf("failed to start SAPI server: %v", err)
	}

	if prometheusEndpoint, ok := gocore.Config().Get("prometheusEndpoint"); ok {
		logger.Infof("Starting prometheus endpoint on %s", prometheusEndpoint)

		go func() {
			http.Handle("/metrics", promhttp.Handler())

			if err := http.ListenAndServe(prometheusEndpoint, nil); err != nil {
				logger.Errorf("prometheus endpoint failed: %v", err)
			}
		}()
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	<-interrupt

	logger.Infof("received shutdown signal")

	server.Interrupt()

	if err := server.Stop(ctx); err != nil {
		logger.Errorf("error stopping SAPI server: %v", err)
	}
}
