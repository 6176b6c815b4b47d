// Package manualdex keeps a local catalog of remotely stored technical
// manuals in sync with a remote document store, enriches each entry with
// AI-extracted metadata, and resolves free-text queries to the best
// matching manual for use as grounding context in chat answers.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., drive/, gemini/, sqlite/).
package manualdex
