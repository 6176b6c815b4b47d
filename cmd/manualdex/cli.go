package main

import (
	"context"
	"io"

	"github.com/manualdex/manualdex"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx           context.Context
	Stdout        io.Writer
	Stderr        io.Writer
	Source        manualdex.ManualSource
	Catalog       manualdex.CatalogService
	Classifier    manualdex.Classifier
	Generator     manualdex.Generator
	Conversations manualdex.ConversationService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Sync   SyncCmd   `cmd:"" help:"Reconcile the catalog with the remote manual store"`
	Ask    AskCmd    `cmd:"" help:"Ask a technical question, grounded in the best-matching manual"`
	List   ListCmd   `cmd:"" help:"List all catalog entries"`
	Delete DeleteCmd `cmd:"" help:"Delete a catalog entry"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	Limit int `short:"l" default:"0" help:"Classify at most N new manuals this pass (0 = unlimited)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question     string `arg:"" help:"Question to ask"`
	Image        string `short:"i" type:"existingfile" help:"Attach a photo (nameplate, error display)"`
	Conversation string `short:"c" help:"Continue an existing conversation by ID"`
	MinScore     int    `default:"2" help:"Minimum match score required to attach a manual"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Catalog entry ID"`
	Force bool   `help:"Confirm deletion"`
}
