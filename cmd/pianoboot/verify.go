package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfrohnhofen/electric-piano/firmware"
	"github.com/jfrohnhofen/electric-piano/protocol"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <image.hex>",
		Short: "Compare the device's flash against a firmware image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := firmware.Load(args[0], flags.pageSize, flags.pageCount)
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			t, closer, err := openTransport()
			if err != nil {
				return err
			}
			defer closer.Close()

			prog := newProgrammer(t)
			mismatches := 0
			for _, page := range img.Pages {
				got, err := prog.VerifyPage(context.Background(), page.Index)
				if err != nil {
					return fmt.Errorf("page %d: %w", page.Index, err)
				}
				want := protocol.Checksum(page.Data)
				if got != want {
					fmt.Printf("page %3d: MISMATCH (device 0x%02X, image 0x%02X)\n", page.Index, got, want)
					mismatches++
				}
			}

			if mismatches > 0 {
				return fmt.Errorf("%d of %d pages differ", mismatches, len(img.Pages))
			}
			fmt.Printf("all %d pages match\n", len(img.Pages))
			return nil
		},
	}
}
