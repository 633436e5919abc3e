package server

import (
	"net"

	"github.com/prebid/prebid-content-server/logger"
	"github.com/prebid/prebid-content-server/metrics"
)

type monitorableConnection struct {
	net.Conn
	metrics metrics.MetricsEngine
}

type monitorableListener struct {
	net.Listener
	metrics metrics.MetricsEngine
}

func (l *monitorableConnection) Close() error {
	err := l.Conn.Close()
	if err == nil {
		l.metrics.RecordConnectionClose(true)
	} else {
		logger.Errorf("Error closing connection: %v", err)
		l.metrics.RecordConnectionClose(false)
	}
	return err
}

func (ln *monitorableListener) Accept() (net.Conn, error) {
	conn, err := ln.Listener.Accept()
	if err != nil {
		logger.Errorf("Error accepting connection: %v", err)
		ln.metrics.RecordConnectionAccept(false)
		return nil, err
	}
	ln.metrics.RecordConnectionAccept(true)
	return &monitorableConnection{conn, ln.metrics}, nil
}
