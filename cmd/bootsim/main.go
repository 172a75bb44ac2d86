// Command bootsim runs the device-side bootloader against a simulated flash
// region on a TCP listener, so host tools can be exercised without hardware:
//
//	bootsim -listen 0.0.0.0:8007 -image flash.bin
//	pianoboot --addr localhost:8007 flash firmware.hex
package main

import (
	"errors"
	"io"
	"net"
	"net/http"
	"os"

	healthz "github.com/klyve/go-healthz"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/jfrohnhofen/electric-piano/bootloader"
	"github.com/jfrohnhofen/electric-piano/flash"
	"github.com/jfrohnhofen/electric-piano/transport"
)

func main() {
	cfg := Load()
	cfg.SetupLogging()

	if cfg.Bind != "false" {
		go func(listenAddress string) {
			log.Infof("Starting metrics server on %s", listenAddress)
			instance := healthz.Instance{
				Logger:   log.New(),
				Detailed: true,
			}

			http.Handle("/metrics", promhttp.Handler())
			http.Handle("/healthz", instance.Healthz())
			http.Handle("/liveness", instance.Liveness())

			if err := http.ListenAndServe(listenAddress, nil); err != nil {
				log.Errorf("HTTP server error: %v", err)
			}
		}(cfg.Bind)
	}

	mem, err := flash.NewMemory(cfg.PageSize, cfg.PageCount)
	if err != nil {
		log.Fatalf("Invalid flash geometry: %v", err)
	}
	if cfg.Image != "" {
		if err := restoreImage(mem, cfg.Image); err != nil {
			log.Fatalf("Failed to restore flash image: %v", err)
		}
	}

	listener, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.Listen, err)
	}
	log.Infof("Simulating a %d x %d byte flash on %s", cfg.PageCount, cfg.PageSize, cfg.Listen)

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Fatalf("Accept failed: %v", err)
		}
		sessionsTotal.Inc()
		serve(conn, mem, cfg)
		if cfg.Image != "" {
			if err := os.WriteFile(cfg.Image, mem.Image(), 0o644); err != nil {
				log.Errorf("Failed to persist flash image: %v", err)
			}
		}
	}
}

// serve runs one bootloader session over the connection. The protocol is
// strictly sequential, so sessions are served one at a time, like a single
// device on a MIDI link.
func serve(conn net.Conn, mem *flash.Memory, cfg *Config) {
	defer conn.Close()
	log.Infof("Host connected from %s", conn.RemoteAddr())

	boot := bootloader.New(transport.NewIO(conn), &meteredFlash{mem},
		bootloader.WithDeviceID(byte(cfg.DeviceID)),
		bootloader.WithVersion(byte(cfg.Version)),
		bootloader.WithLogger(log.StandardLogger()),
		bootloader.WithErrorHook(countProtocolError),
		bootloader.WithExitFunc(func() {
			handoffsTotal.Inc()
			log.Info("Resident application would start now; ending session")
		}),
	)

	if err := boot.Run(); err != nil {
		if errors.Is(err, io.EOF) {
			log.Infof("Host %s disconnected", conn.RemoteAddr())
			return
		}
		log.Errorf("Session error: %v", err)
	}
}

// restoreImage loads a previously persisted flash image. A missing file is
// fine: the simulated flash starts erased.
func restoreImage(mem *flash.Memory, path string) error {
	img, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Infof("No flash image at %s, starting erased", path)
		return nil
	}
	if err != nil {
		return err
	}
	if err := mem.LoadImage(img); err != nil {
		return err
	}
	log.Infof("Restored flash image from %s", path)
	return nil
}
