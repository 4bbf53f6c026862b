// Package core provides a small, stable facade over printsweep's internal
// scanner and batch processor for external integrations. It re-exports a
// narrow API surface so other tools can depend on a stable import path
// without importing internal packages.
//
// Example:
//
//	cats, _ := core.ParseCategories([]string{"log", "debug"})
//	paths, _ := core.Discover(context.Background(), core.Config{Root: "."})
//	results := core.ProcessAll(context.Background(), paths, cats, core.Options{DryRun: true})
//	_ = core.MarshalResults(os.Stdout, results)
package core
