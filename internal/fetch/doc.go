// Package fetch implements the download runs: list the remote meeting
// documents, apply the date cutoff, and write one JSON record per meeting
// into the output directory.
//
// Runs are restartable and idempotent. Existing files are skipped unless
// force is set, and any per-document failure is logged and counted rather
// than aborting the batch. Only a failure to list documents at all is fatal.
package fetch
