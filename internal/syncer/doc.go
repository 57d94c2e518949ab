// Package syncer drives a sync run: it decides which files need work,
// performs each conversion atomically, schedules conversions across a
// bounded worker pool, and reconciles the target tree afterwards.
//
// The usual flow is owned by Manager:
//
//	mgr, _ := syncer.NewManager(settings, onProgress)
//	if _, err := mgr.Scan(ctx); err != nil { ... } // fatal mapping errors
//	err := mgr.Run(ctx)                            // convert, then sanitize
//
// Scan enumerates the source tree and submits one task per file. Run
// drains the pool (per-task failures are collected, never fatal) and
// only once every task has completed does it prune the target tree.
// Progress is reported through a ProgressEvent callback; there is no
// global logger.
package syncer
