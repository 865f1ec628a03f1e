package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/folio/internal/buildsize"
)

func newSizeCheckCmd(a *app) *cobra.Command {
	var (
		limit  int64
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "sizecheck [dir]",
		Short: "Report the size of a build directory against a budget",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.SizeCheck.Dir
			if len(args) == 1 {
				dir = args[0]
			}
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.SizeCheck.Limit
			}

			out := cmd.OutOrStdout()
			r, err := buildsize.Check(dir, limit)
			if errors.Is(err, buildsize.ErrNotFound) {
				fmt.Fprintf(out, "Build directory %s not found. Run the build first.\n", dir)
				return nil
			}
			if err != nil {
				return err
			}
			a.log.Debug("size checked", zap.String("dir", dir), zap.Int64("size", r.Size), zap.Int64("limit", r.Limit))

			fmt.Fprintln(out, r)
			if !r.Over {
				fmt.Fprintf(out, "Bundle size is within %s limit\n", buildsize.FormatBytes(r.Limit))
				return nil
			}
			fmt.Fprintf(out, "Bundle size is at or over the %s limit!\n", buildsize.FormatBytes(r.Limit))
			if strict {
				return fmt.Errorf("%s is %s, at or over the %s limit", dir, buildsize.FormatBytes(r.Size), buildsize.FormatBytes(r.Limit))
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&limit, "limit", buildsize.DefaultLimit, "size budget in bytes")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when the budget is exceeded")
	return cmd
}
