package main

import (
	"fmt"

	"github.com/manualdex/manualdex"
	"github.com/manualdex/manualdex/reconcile"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	syncer := &reconcile.Syncer{
		Source:     deps.Source,
		Catalog:    deps.Catalog,
		Classifier: deps.Classifier,
		Limit:      c.Limit,
		Progress: func(p reconcile.Progress) {
			if p.Err != nil {
				fmt.Fprintf(deps.Stderr, "[%d/%d] skipped %s: %s\n", p.Completed, p.Total, p.Name, manualdex.ErrorMessage(p.Err))
				return
			}
			fmt.Fprintf(deps.Stdout, "[%d/%d] indexed %s\n", p.Completed, p.Total, p.Name)
		},
	}

	report, err := syncer.Sync(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", manualdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%d remote files: %d added, %d removed, %d renamed, %d skipped\n",
		report.Total, report.Added, report.Removed, report.Renamed, report.Skipped)
	return nil
}
