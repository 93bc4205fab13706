// Package cache provides the process-wide query cache shared by the SDK's
// data services. It is an explicit, injected service object rather than
// ambient module state, so tests construct isolated instances.
//
// Entries are keyed by resource plus parameters (K("post", id), K("feed",
// "6.52:3.37")) and carry a version and a staleness flag. Reads never
// block: Get returns the last-known value immediately. Writers are the
// optimistic mutation engine and background refetches.
//
// Two facilities exist specifically for optimistic mutations:
//
//   - Mutate runs a function against a transaction view under the cache
//     lock, making snapshot-then-predict atomic with respect to every
//     other cache user.
//   - TrackInflight/CancelInflight implement the cancel-before-snapshot
//     discipline: a mutation cancels in-flight fetches for the resources
//     it is about to rewrite, so a late response cannot clobber the
//     prediction.
package cache
