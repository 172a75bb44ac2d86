package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Profile is a YAML device profile. Explicit command-line flags take
// precedence over profile values.
//
// Example:
//
//	device_id: 0x70
//	protocol_version: 0x01
//	page_size: 64
//	page_count: 128
//	port: /dev/ttyUSB0
//	baud: 31250
type Profile struct {
	DeviceID  *uint8  `yaml:"device_id"`
	Version   *uint8  `yaml:"protocol_version"`
	PageSize  *int    `yaml:"page_size"`
	PageCount *int    `yaml:"page_count"`
	Port      *string `yaml:"port"`
	Baud      *int    `yaml:"baud"`
	Addr      *string `yaml:"addr"`
}

// applyProfile loads the --config profile, if any, and fills in every value
// the user did not set explicitly on the command line.
func applyProfile(cmd *cobra.Command) error {
	if flags.config == "" {
		return nil
	}

	raw, err := os.ReadFile(flags.config)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(raw, &profile); err != nil {
		return fmt.Errorf("parse config %s: %w", flags.config, err)
	}

	set := cmd.Flags().Changed
	if profile.DeviceID != nil && !set("device-id") {
		flags.deviceID = *profile.DeviceID
	}
	if profile.Version != nil && !set("protocol-version") {
		flags.version = *profile.Version
	}
	if profile.PageSize != nil && !set("page-size") {
		flags.pageSize = *profile.PageSize
	}
	if profile.PageCount != nil && !set("page-count") {
		flags.pageCount = *profile.PageCount
	}
	if profile.Port != nil && !set("port") {
		flags.port = *profile.Port
	}
	if profile.Baud != nil && !set("baud") {
		flags.baud = *profile.Baud
	}
	if profile.Addr != nil && !set("addr") {
		flags.addr = *profile.Addr
	}
	return nil
}
