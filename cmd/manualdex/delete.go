package main

import (
	"fmt"

	"github.com/manualdex/manualdex"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return manualdex.Errorf(manualdex.EINVALID, "use --force to confirm deletion")
	}

	catalog, err := deps.Catalog.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", manualdex.ErrorMessage(err))
		return err
	}

	m, ok := catalog[c.ID]
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: entry %q not found. Use 'manualdex list' to see catalog entries.\n", c.ID)
		return manualdex.Errorf(manualdex.ENOTFOUND, "entry %q not found", c.ID)
	}

	delete(catalog, c.ID)
	if err := deps.Catalog.Save(deps.Ctx, catalog); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", manualdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %q\n", m.DisplayName)
	return nil
}
