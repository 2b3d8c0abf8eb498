// Package split coordinates the whole run: it loads the sheet, plans the
// jobs, probes the sources, and drives parallel extraction with tagging.
//
// A Manager is used in two phases:
//
//	manager := split.NewManager(settings, onProgress)
//	if err := manager.Initialize(ctx, "rip.cue"); err != nil { ... }
//	report := manager.Run(ctx)
//
// Initialize fails fast on anything that makes the run as a whole
// impossible: a malformed sheet, a missing source file, unusable binaries.
// Run never fails fast; each track job succeeds or fails on its own and the
// returned Report collects every outcome in sheet order.
//
// Progress is delivered through the onProgress callback so the same Manager
// serves both the plain CLI and the TUI.
package split
