package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <page>",
		Short: "Read one flash page and print a hex dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid page number %q", args[0])
			}

			t, closer, err := openTransport()
			if err != nil {
				return err
			}
			defer closer.Close()

			data, err := newProgrammer(t).ReadPage(context.Background(), page)
			if err != nil {
				return err
			}
			fmt.Print(hex.Dump(data))
			return nil
		},
	}
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <out.bin>",
		Short: "Read the entire flash into a binary file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, closer, err := openTransport()
			if err != nil {
				return err
			}
			defer closer.Close()

			prog := newProgrammer(t)
			out := make([]byte, 0, flags.pageSize*flags.pageCount)
			for page := 0; page < flags.pageCount; page++ {
				data, err := prog.ReadPage(context.Background(), page)
				if err != nil {
					return fmt.Errorf("page %d: %w", page, err)
				}
				out = append(out, data...)
				fmt.Printf("\rread page %d/%d", page+1, flags.pageCount)
			}
			fmt.Println()

			if err := os.WriteFile(args[0], out, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %d bytes to %s\n", len(out), args[0])
			return nil
		},
	}
}
