package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/prebid/prebid-content-server/config"
	"github.com/prebid/prebid-content-server/logger"
	"github.com/prebid/prebid-content-server/metrics"
	metricsconfig "github.com/prebid/prebid-content-server/metrics/config"
)

// Listen blocks forever, serving content requests on the configured ports, until the process is shut down.
func Listen(cfg *config.Configuration, handler http.Handler, adminHandler http.Handler, metricsEngine *metricsconfig.DetailedMetricsEngine) {
	stopSignals := make(chan os.Signal, 1)
	signal.Notify(stopSignals, syscall.SIGTERM, syscall.SIGINT)
	listen(cfg, handler, adminHandler, metricsEngine, stopSignals)
}

func listen(cfg *config.Configuration, handler http.Handler, adminHandler http.Handler, metricsEngine *metricsconfig.DetailedMetricsEngine, stopSignals <-chan os.Signal) {
	// Run the servers. Fan any process-stopper signals out to each server for graceful shutdowns.
	stopAdmin := make(chan os.Signal)
	stopMain := make(chan os.Signal)
	stopPrometheus := make(chan os.Signal)
	done := make(chan struct{})

	adminServer := newAdminServer(cfg, adminHandler)
	mainServer := newMainServer(cfg, handler)

	var connectionMetrics metrics.MetricsEngine
	if metricsEngine != nil {
		connectionMetrics = metricsEngine
	}
	mainListener, err := newTCPListener(mainServer.Addr, connectionMetrics)
	if err != nil {
		logger.Errorf("Error listening for TCP connections on %s: %v for main server", mainServer.Addr, err)
		return
	}
	adminListener, err := newTCPListener(adminServer.Addr, nil)
	if err != nil {
		logger.Errorf("Error listening for TCP connections on %s: %v for admin server", adminServer.Addr, err)
		mainListener.Close()
		return
	}

	go shutdownAfterSignals(adminServer, stopAdmin, done)
	go shutdownAfterSignals(mainServer, stopMain, done)
	go runServer(mainServer, "Main", mainListener)
	go runServer(adminServer, "Admin", adminListener)

	if cfg.Metrics.Prometheus.Port != 0 {
		prometheusServer := newPrometheusServer(cfg, metricsEngine)
		prometheusListener, err := newTCPListener(prometheusServer.Addr, nil)
		if err != nil {
			logger.Errorf("Error listening for TCP connections on %s: %v for prometheus server", prometheusServer.Addr, err)
			wait(stopSignals, done, stopMain, stopAdmin)
			return
		}
		go shutdownAfterSignals(prometheusServer, stopPrometheus, done)
		go runServer(prometheusServer, "Prometheus", prometheusListener)

		wait(stopSignals, done, stopMain, stopAdmin, stopPrometheus)
	} else {
		wait(stopSignals, done, stopMain, stopAdmin)
	}
}

func newAdminServer(cfg *config.Configuration, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:    cfg.Host + ":" + strconv.Itoa(cfg.AdminPort),
		Handler: handler,
	}
}

func newMainServer(cfg *config.Configuration, handler http.Handler) *http.Server {
	var serverHandler = handler
	if cfg.EnableGzip {
		serverHandler = gziphandler.GzipHandler(handler)
	}

	return &http.Server{
		Addr:         cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Handler:      serverHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}

func runServer(server *http.Server, name string, listener net.Listener) {
	if server == nil || listener == nil {
		logger.Errorf("%s server cannot start without both a server and a listener", name)
		return
	}

	logger.Infof("%s server starting on: %s", name, server.Addr)
	err := server.Serve(listener)
	if err != http.ErrServerClosed {
		logger.Errorf("%s server quit with error: %v", name, err)
	}
}

func newTCPListener(address string, metricsEngine metrics.MetricsEngine) (net.Listener, error) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("error listening for TCP connections on %s: %v", address, err)
	}

	if metricsEngine != nil {
		ln = &monitorableListener{ln, metricsEngine}
	}

	return ln, nil
}

func wait(inbound <-chan os.Signal, done <-chan struct{}, outbound ...chan<- os.Signal) {
	sig := <-inbound

	for i := 0; i < len(outbound); i++ {
		go sendSignal(outbound[i], sig)
	}

	for i := 0; i < len(outbound); i++ {
		<-done
	}
}

func shutdownAfterSignals(server *http.Server, stopper <-chan os.Signal, done chan<- struct{}) {
	sig := <-stopper

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var s struct{}
	logger.Infof("Stopping %s because of signal: %s", server.Addr, sig.String())
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Failed to shutdown %s: %v", server.Addr, err)
	}
	done <- s
}

func sendSignal(to chan<- os.Signal, sig os.Signal) {
	to <- sig
}
