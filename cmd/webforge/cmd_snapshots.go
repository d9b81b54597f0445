package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"webforge/internal/format"
	"webforge/internal/store"
)

var snapshotsFlags struct {
	runID        string
	outputFormat string
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots [id]",
	Short: "List stored suite snapshots, or dump one by id",
	Long: `Snapshots lists the suites persisted by previous generate runs. With an
id argument, the stored suite JSON is printed to stdout for piping into
analyze or a test runner.

Usage:
  webforge snapshots
  webforge snapshots --run=<run-id>
  webforge snapshots 3 > suite.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSnapshots,
}

func init() {
	f := snapshotsCmd.Flags()
	f.StringVar(&snapshotsFlags.runID, "run", "", "Only list snapshots of this run")
	f.StringVar(&snapshotsFlags.outputFormat, "format", "ascii", "List format: ascii or markdown")
}

func runSnapshots(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("snapshot id %q is not a number", args[0])
		}
		snap, err := st.GetSnapshot(id)
		if err != nil {
			return err
		}
		if snap == nil {
			return fmt.Errorf("snapshot %d not found", id)
		}
		_, err = os.Stdout.Write(append(snap.Suite, '\n'))
		return err
	}

	var snaps []*store.Snapshot
	if snapshotsFlags.runID != "" {
		snaps, err = st.ListSnapshotsByRun(snapshotsFlags.runID)
	} else {
		snaps, err = st.ListSnapshots()
	}
	if err != nil {
		return err
	}

	tb := format.NewTable(format.ParseMode(snapshotsFlags.outputFormat))
	tb.Title("Snapshots")
	tb.Header("ID", "Run", "Kind", "URL", "Cases", "Score", "Created")
	tb.Columns(
		format.ColumnConfig{Number: 2, MaxWidth: 12},
		format.ColumnConfig{Number: 4, MaxWidth: 32},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, Align: format.AlignRight},
	)
	for _, s := range snaps {
		tb.Row(s.ID, s.RunID, s.Kind, s.AppURL, s.CaseCount, format.FmtScore(s.Overall), s.CreatedAt)
	}
	fmt.Println(tb.String())
	return nil
}
