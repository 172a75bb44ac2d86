package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jfrohnhofen/electric-piano/flash"
	"github.com/jfrohnhofen/electric-piano/protocol"
)

var (
	sessionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bootsim_sessions_total",
		Help: "Number of host connections accepted.",
	})
	handoffsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bootsim_handoffs_total",
		Help: "Number of Quit commands that handed control to the application.",
	})
	protocolErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bootsim_protocol_errors_total",
		Help: "Error replies sent, by error code name.",
	}, []string{"code"})
	pageErases = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bootsim_page_erases_total",
		Help: "Flash page erase operations performed.",
	})
	pageWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bootsim_page_writes_total",
		Help: "Flash page program operations performed.",
	})
)

func countProtocolError(code byte) {
	protocolErrors.WithLabelValues(protocol.ErrorName(code)).Inc()
}

// meteredFlash wraps the simulated memory and counts medium operations.
type meteredFlash struct {
	*flash.Memory
}

func (m *meteredFlash) PageErase(page int) error {
	if err := m.Memory.PageErase(page); err != nil {
		return err
	}
	pageErases.Inc()
	return nil
}

func (m *meteredFlash) PageWrite(page int) error {
	if err := m.Memory.PageWrite(page); err != nil {
		return err
	}
	pageWrites.Inc()
	return nil
}
