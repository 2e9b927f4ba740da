package main

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/drawdemo/internal/document"
	"github.com/jask/drawdemo/internal/testdata"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list prints the drawings in the library.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := librarySession()
		if err != nil {
			return err
		}
		defer s.close()

		drawings, err := s.repo.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(drawings) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no drawings")
			return nil
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("NAME", "SHAPES", "UPDATED")
		for _, d := range drawings {
			t.Row(d.Name, strconv.Itoa(d.Shapes), d.UpdatedAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export NAME FILE",
	Short: "export writes a library drawing to a .toml, .yaml or .json file.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := librarySession()
		if err != nil {
			return err
		}
		defer s.close()

		m, err := s.repo.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := document.WriteFile(args[1], m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %q (%d shapes) to %s\n", args[0], m.Len(), args[1])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE NAME",
	Short: "import stores a drawing document in the library, replacing NAME.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := document.ReadFile(args[0])
		if err != nil {
			return err
		}
		s, err := librarySession()
		if err != nil {
			return err
		}
		defer s.close()

		if _, err := s.repo.Save(cmd.Context(), args[1], m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %s as %q (%d shapes)\n", args[0], args[1], m.Len())
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm NAME",
	Aliases: []string{"delete"},
	Short:   "rm deletes a drawing from the library.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := librarySession()
		if err != nil {
			return err
		}
		defer s.close()
		return s.repo.Delete(cmd.Context(), args[0])
	},
}

var (
	generateShapes int
	generateSeed   int64
	resetConfirmed bool
)

var generateCmd = &cobra.Command{
	Use:   "generate NAME",
	Short: "generate stores a drawing of random shapes under NAME.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if generateShapes < 0 {
			return fmt.Errorf("--shapes must not be negative")
		}
		seed := generateSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		m := testdata.Drawing(rand.New(rand.NewSource(seed)), generateShapes, 1000, 600)

		s, err := librarySession()
		if err != nil {
			return err
		}
		defer s.close()
		if _, err := s.repo.Save(cmd.Context(), args[0], m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "generated %q (%d shapes, seed %d)\n", args[0], m.Len(), seed)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "reset deletes every drawing in the library.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirmed {
			return errors.New("reset removes all drawings; pass --yes to confirm")
		}
		s, err := librarySession()
		if err != nil {
			return err
		}
		defer s.close()
		n, err := s.repo.Reset(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d drawings\n", n)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&generateShapes, "shapes", 12, "number of shapes")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed (0 picks one)")
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "confirm the reset")
	rootCmd.AddCommand(listCmd, exportCmd, importCmd, rmCmd, generateCmd, resetCmd)
}

func librarySession() (*session, error) {
	s, err := openSession()
	if err != nil {
		return nil, err
	}
	if err := s.attachRepo(); err != nil {
		return nil, err
	}
	return s, nil
}
