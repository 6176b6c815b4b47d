package main

import (
	"fmt"

	"github.com/manualdex/manualdex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	catalog, err := deps.Catalog.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", manualdex.ErrorMessage(err))
		return err
	}

	if len(catalog) == 0 {
		fmt.Fprintln(deps.Stdout, "Catalog is empty. Use 'manualdex sync' to index the remote store.")
		return nil
	}

	for _, id := range catalog.SortedIDs() {
		m := catalog[id]
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", m.ID, m.DisplayName, describeManual(m))
	}

	return nil
}

// describeManual renders an entry's metadata for listing. Fallback entries
// carry free text instead of structured fields.
func describeManual(m *manualdex.Manual) string {
	if !m.Metadata.Structured() {
		return "(unclassified)"
	}
	return fmt.Sprintf("%s %s [%s]", m.Metadata.Brand, m.Metadata.Model, m.Metadata.DocType)
}
