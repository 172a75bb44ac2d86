package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfrohnhofen/electric-piano/firmware"
	"github.com/jfrohnhofen/electric-piano/programmer"
)

func newFlashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flash <image.hex>",
		Short: "Write an Intel HEX firmware image and start it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := firmware.Load(args[0], flags.pageSize, flags.pageCount)
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			fmt.Printf("loaded %s: %d pages (%d bytes)\n", args[0], len(img.Pages), img.Size())

			t, closer, err := openTransport()
			if err != nil {
				return err
			}
			defer closer.Close()

			prog := programmer.New(t,
				programmer.WithDeviceID(flags.deviceID),
				programmer.WithVersion(flags.version),
				programmer.WithPageGeometry(flags.pageSize, flags.pageCount),
				programmer.WithVerifyAfterWrite(!flags.noVerify),
				programmer.WithProgressCallback(printProgress),
			)

			if err := prog.Program(context.Background(), img); err != nil {
				return err
			}
			fmt.Println("\ndone")
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.noVerify, "no-verify", false, "skip per-page verification after writing")
	return cmd
}

func printProgress(p programmer.Progress) {
	fmt.Printf("\r[%-10s] %5.1f%% page %d/%d", p.Phase, p.Percentage, p.CurrentPage, p.TotalPages)
}
