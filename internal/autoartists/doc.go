// Package autoartists runs the artists extraction over a library.
//
// # Manager
//
// The Manager coordinates a run:
//
//  1. Query the store for items
//  2. Leave out items that already have artists, unless overwriting
//  3. Compute the artists list of every item concurrently
//  4. Split the results into unchanged items and changes
//  5. Ask for confirmation (yes, no, or select per item)
//  6. Write the confirmed changes back to the store
//
// # Basic Usage
//
//	manager := autoartists.NewManager(settings, lib, logger, func(event autoartists.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	plan, err := manager.Plan(ctx, library.ParseQuery(args))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(plan.Summary(manager.Overwrite()))
//
//	written, err := manager.Apply(ctx, plan.Changes, confirmer)
//	if errors.Is(err, autoartists.ErrCanceled) {
//	    fmt.Println("canceled")
//	}
//
// # Overwrite
//
// The overwrite setting comes from the configuration and can be overridden
// per run with ResolveOverwrite. Setting both flags is an error.
//
// # Import Stage
//
// Imported processes newly imported items without asking, but only when the
// auto setting is enabled.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent.
// Writes in yes mode run concurrently, so the callback must be safe for
// concurrent use.
package autoartists
