package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flags struct {
	config    string
	port      string
	baud      int
	addr      string
	deviceID  uint8
	version   uint8
	pageSize  int
	pageCount int
	logLevel  string
	noVerify  bool
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "pianoboot",
		Short: "Flash programming tool for the electric-piano bootloader",
		Long: `pianoboot talks to the electric-piano's resident bootloader over a MIDI
serial link (or a TCP connection to the bootsim simulator) and can flash,
read back and verify the instrument's firmware.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(flags.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q", flags.logLevel)
			}
			log.SetLevel(level)
			return applyProfile(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "YAML device profile")
	pf.StringVarP(&flags.port, "port", "p", "", "serial port of the MIDI interface")
	pf.IntVarP(&flags.baud, "baud", "b", 31250, "serial baud rate")
	pf.StringVar(&flags.addr, "addr", "", "TCP address of a bootsim instance (overrides --port)")
	pf.Uint8Var(&flags.deviceID, "device-id", 0x70, "device identifier byte")
	pf.Uint8Var(&flags.version, "protocol-version", 0x01, "protocol version byte")
	pf.IntVar(&flags.pageSize, "page-size", 64, "flash page size in bytes")
	pf.IntVar(&flags.pageCount, "page-count", 128, "number of flash pages")
	pf.StringVar(&flags.logLevel, "log-level", "info", "logging level")

	rootCmd.AddCommand(newPingCmd())
	rootCmd.AddCommand(newFlashCmd())
	rootCmd.AddCommand(newReadCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
