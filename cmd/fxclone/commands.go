package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/fxclone"
	"github.com/gogpu/fxclone/fx"
	"github.com/gogpu/fxclone/wgpumap"
)

func newCloneCommand(opts *rootOptions) *cobra.Command {
	var flags cloneFlags
	cmd := &cobra.Command{
		Use:   "clone <fixture>",
		Short: "Clone a module, release it and report allocations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := opts.loadFixture(args[0])
			if err != nil {
				return err
			}
			budget, parallel := flags.resolve(cmd, opts.cfg)
			c, counter := opts.newCloner(budget, parallel)

			fmt.Fprintln(cmd.OutOrStdout(), TitleStyle.Render("clone")+" "+args[0])
			m, err := c.CloneModule(src)
			if err != nil {
				stats := counter.Stats()
				row(cmd, "failed", "%v", err)
				row(cmd, "allocations", "%d (%d refused)", stats.Allocs, stats.Failed)
				if n, b := counter.Live(); n != 0 {
					return &ExitError{Code: 2, Err: fmt.Errorf("%w: %d allocations (%d bytes) live after a failed clone", fxclone.ErrLeak, n, b)}
				}
				return &ExitError{Code: 1, Err: err}
			}

			row(cmd, "entry points", "%d", len(m.EntryPoints))
			row(cmd, "textures", "%d", len(m.Textures))
			row(cmd, "samplers", "%d", len(m.Samplers))
			row(cmd, "storages", "%d", len(m.Storages))
			row(cmd, "uniforms", "%d", len(m.Uniforms))
			row(cmd, "spec constants", "%d", len(m.SpecConstants))
			row(cmd, "techniques", "%d", len(m.Techniques))
			row(cmd, "code", "%d bytes", len(m.Code))

			stats := counter.Stats()
			row(cmd, "allocations", "%d (%d bytes)", stats.Allocs, stats.TotalBytes)
			row(cmd, "peak", "%d bytes", stats.PeakBytes)
			if budget > 0 {
				row(cmd, "budget", "%d bytes", budget)
			}

			c.ReleaseModule(m)
			if n, b := counter.Live(); n != 0 || b != 0 {
				row(cmd, "live", "%s", ErrorStyle.Render(fmt.Sprintf("%d (%d bytes)", n, b)))
				return &ExitError{Code: 2, Err: fmt.Errorf("%w: %d allocations live after release", fxclone.ErrLeak, n)}
			}
			row(cmd, "live", "%s", SuccessStyle.Render("0"))
			return nil
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newSweepCommand(opts *rootOptions) *cobra.Command {
	var flags cloneFlags
	cmd := &cobra.Command{
		Use:   "sweep <fixture>",
		Short: "Fail every allocation of a clone once and check for leaks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := opts.loadFixture(args[0])
			if err != nil {
				return err
			}
			_, parallel := flags.resolve(cmd, opts.cfg)

			report, err := fxclone.Sweep(src, fxclone.SweepOptions{
				Parallel: parallel,
				Logger:   opts.logger,
			})

			fmt.Fprintln(cmd.OutOrStdout(), TitleStyle.Render("sweep")+" "+args[0])
			row(cmd, "sites", "%d", report.Sites)
			row(cmd, "failures", "%d", report.Failures)
			row(cmd, "clean peak", "%d bytes", report.CleanBytes)
			for _, leak := range report.Leaks {
				row(cmd, "leak", "%s", WarningStyle.Render(fmt.Sprintf("site %d at %q: %d allocations (%d bytes)",
					leak.Site, leak.Path, leak.Count, leak.Bytes)))
			}
			if err != nil {
				code := 1
				if errors.Is(err, fxclone.ErrLeak) {
					code = 2
				}
				return &ExitError{Code: code, Err: err}
			}
			row(cmd, "leaks", "%s", SuccessStyle.Render("none"))
			return nil
		},
	}
	flags.register(cmd, false)
	return cmd
}

func newCheckCommand(opts *rootOptions) *cobra.Command {
	var withWGPU bool
	cmd := &cobra.Command{
		Use:   "check <fixture>",
		Short: "Validate a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadFixture(args[0])
			if err != nil {
				return err
			}
			verrs, err := fxclone.Validate(m)
			if err != nil {
				return err
			}
			var problems []error
			for _, e := range verrs {
				problems = append(problems, e)
			}
			if withWGPU {
				problems = append(problems, wgpumap.Check(m)...)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, TitleStyle.Render("check")+" "+args[0])
			if len(problems) == 0 {
				fmt.Fprintln(out, "  "+SuccessStyle.Render("ok"))
				return nil
			}
			for _, p := range problems {
				fmt.Fprintln(out, "  "+ErrorStyle.Render("error")+" "+p.Error())
			}
			return &ExitError{Code: 1, Err: fmt.Errorf("%d problems in %s", len(problems), args[0])}
		},
	}
	cmd.Flags().BoolVar(&withWGPU, "wgpu", false, "also check that every state maps onto WebGPU")
	return cmd
}

func newDumpCommand(opts *rootOptions) *cobra.Command {
	var cloned bool
	cmd := &cobra.Command{
		Use:   "dump <fixture>",
		Short: "Print a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.loadFixture(args[0])
			if err != nil {
				return err
			}
			if cloned {
				c, _ := opts.newCloner(opts.cfg.Budget, opts.cfg.Parallel)
				dst, err := c.CloneModule(m)
				if err != nil {
					return err
				}
				defer c.ReleaseModule(dst)
				m = dst
			}
			return fx.Dump(cmd.OutOrStdout(), m)
		},
	}
	cmd.Flags().BoolVar(&cloned, "clone", false, "dump a clone of the module instead of the loaded one")
	return cmd
}
