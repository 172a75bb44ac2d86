package main

import (
	"context"
	"fmt"
	"io"
	"net"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jfrohnhofen/electric-piano/programmer"
	"github.com/jfrohnhofen/electric-piano/transport"
)

// openTransport connects to the device: TCP when --addr is given, serial
// otherwise.
func openTransport() (transport.Transport, io.Closer, error) {
	if flags.addr != "" {
		conn, err := net.Dial("tcp", flags.addr)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to %s: %w", flags.addr, err)
		}
		log.Debugf("connected to simulator at %s", flags.addr)
		return transport.NewIO(conn), conn, nil
	}

	if flags.port == "" {
		return nil, nil, fmt.Errorf("no device: set --port or --addr")
	}
	port, err := transport.OpenSerial(flags.port, flags.baud)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("opened %s at %d baud", flags.port, flags.baud)
	return port, port, nil
}

func newProgrammer(t transport.Transport) *programmer.Programmer {
	return programmer.New(t,
		programmer.WithDeviceID(flags.deviceID),
		programmer.WithVersion(flags.version),
		programmer.WithPageGeometry(flags.pageSize, flags.pageCount),
		programmer.WithVerifyAfterWrite(!flags.noVerify),
		programmer.WithLogger(log.StandardLogger()),
	)
}

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the bootloader is listening",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, closer, err := openTransport()
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := newProgrammer(t).Ping(context.Background()); err != nil {
				return err
			}
			fmt.Println("bootloader is alive")
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Leave the bootloader and start the resident application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, closer, err := openTransport()
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := newProgrammer(t).Quit(context.Background()); err != nil {
				return err
			}
			fmt.Println("application started")
			return nil
		},
	}
}
