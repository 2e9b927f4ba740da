package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

var snapshotWidth, snapshotHeight int

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "snapshot prints one frame of the editor without a terminal.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSnapshot(cmd.Context(), cmd.OutOrStdout(), snapshotWidth, snapshotHeight)
	},
}

func init() {
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", defaultWidth, "frame width in cells")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", defaultHeight, "frame height in cells")
	rootCmd.AddCommand(snapshotCmd)
}

func printSnapshot(ctx context.Context, w io.Writer, width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("snapshot size %dx%d: both sides must be positive", width, height)
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	if s.needsRepo() {
		if err := s.attachRepo(); err != nil {
			return err
		}
	}
	defer s.close()

	m, err := s.initialModel(ctx)
	if err != nil {
		return err
	}
	app, err := s.newApp(ctx, m)
	if err != nil {
		return err
	}
	app.Resize(width, height)
	_, err = fmt.Fprintln(w, app.View())
	return err
}
