package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"gfxport/gos"
	"gfxport/internal/soak"
)

var (
	soakFormat  string
	soakMajor   int
	soakWorkers int
	soakLimit   int
	soakDepth   int
	soakFor     time.Duration
	soakSeed    int64
)

func init() {
	def := soak.DefaultOptions()
	soakCmd.Flags().StringVar(&soakFormat, "format", "text", "report format (text|json|msgpack)")
	soakCmd.Flags().IntVar(&soakMajor, "kernel", 0, "kernel major version override (2..5)")
	soakCmd.Flags().IntVar(&soakWorkers, "workers", def.Workers, "semaphore workers")
	soakCmd.Flags().IntVar(&soakLimit, "limit", def.Limit, "semaphore limit")
	soakCmd.Flags().IntVar(&soakDepth, "depth", def.QueueDepth, "queue capacity")
	soakCmd.Flags().DurationVar(&soakFor, "duration", def.Duration, "how long to run")
	soakCmd.Flags().Int64Var(&soakSeed, "seed", def.Seed, "random seed")
}

var soakCmd = &cobra.Command{
	Use:   "soak",
	Short: "Hammer semaphores and queues and check their invariants",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyColor(cmd); err != nil {
			return err
		}
		format := strings.ToLower(soakFormat)
		switch format {
		case "text", "json", "msgpack":
		default:
			return fmt.Errorf("unsupported format %q (must be text, json or msgpack)", soakFormat)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if soakMajor != 0 {
			cfg.Kernel.Major = soakMajor
		}
		o, err := gos.New(cfg)
		if err != nil {
			return err
		}
		defer o.Deinit()

		r, err := soak.Run(cmd.Context(), o, soak.Options{
			Workers:    soakWorkers,
			Duration:   soakFor,
			Limit:      soakLimit,
			QueueDepth: soakDepth,
			Seed:       soakSeed,
		})
		if err != nil {
			return err
		}
		if err := writeReport(cmd.OutOrStdout(), format, r); err != nil {
			return err
		}
		if !r.OK() {
			return fmt.Errorf("soak: %d invariant violation(s)", len(r.Violations))
		}
		return nil
	},
}

func writeReport(out io.Writer, format string, r soak.Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "msgpack":
		return msgpack.NewEncoder(out).Encode(r)
	default:
		renderReportText(out, r)
		return nil
	}
}

func renderReportText(out io.Writer, r soak.Report) {
	status := passColor.Sprint("PASS")
	if !r.OK() {
		status = failColor.Sprint("FAIL")
	}
	fmt.Fprintf(out, "%s kernel %d.x, %d Hz, %d workers, limit %d, %s\n",
		status, r.Kernel, r.TickHz, r.Workers, r.Limit, r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "%s signals=%d waits=%d acquired=%d max_count=%d\n",
		keyColor.Sprint("sem:  "), r.Signals, r.Waits, r.Acquired, r.MaxCount)
	fmt.Fprintf(out, "%s put=%d got=%d\n", keyColor.Sprint("queue:"), r.QueuePut, r.QueueGot)
	for _, v := range r.Violations {
		fmt.Fprintf(out, "  %s %s\n", failColor.Sprint("!"), v)
	}
}
