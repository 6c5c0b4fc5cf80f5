package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"

	"github.com/Laisky/go-sss/config"
	"github.com/Laisky/go-sss/solver"
)

func init() {
	rootCmd.AddCommand(recoverCmd)
	recoverCmd.Flags().StringSliceP("file", "f", nil, "test case files, could also be given as args")
	recoverCmd.Flags().IntP("parallel", "p", 1, "how many test cases are solved at the same time")
}

var recoverCmd = &cobra.Command{
	Use:   "recover [files...]",
	Short: "recover secret from test case files",
	Long: `Recover secret from every test case file.

Only the first k roots of each file, in the order they appear,
are used to interpolate the polynomial at x = 0.

    gsss recover -p 4 testcase1.json testcase2.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Shared.BindPFlag(config.KeyCases, cmd.Flags().Lookup("file")); err != nil {
			return errors.Wrap(err, "bind flag file")
		}
		if err := config.Shared.BindPFlag(config.KeyParallel, cmd.Flags().Lookup("parallel")); err != nil {
			return errors.Wrap(err, "bind flag parallel")
		}

		st, err := config.Shared.Settings()
		if err != nil {
			return err
		}

		files := append(st.Cases, args...)
		return runRecover(cmd.Context(), cmd.OutOrStdout(), files, st.Parallel)
	},
}

func runRecover(ctx context.Context, w io.Writer, files []string, parallel int) error {
	if len(files) == 0 {
		return errors.Errorf("no test case file given")
	}

	s, err := solver.New()
	if err != nil {
		return errors.Wrap(err, "new solver")
	}

	results, err := s.SolveFiles(ctx, files, parallel)
	if err != nil {
		return err
	}

	for _, r := range results {
		if _, err = fmt.Fprintf(w, "Secret for %s: %s\n", r.Name, r.Secret.String()); err != nil {
			return errors.Wrap(err, "write result")
		}
	}

	return nil
}
