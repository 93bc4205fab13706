// Package mutation implements optimistic cache mutations with rollback.
//
// Each user-triggered interaction (like, unlike, save, unsave) becomes a
// MutationIntent with a strictly linear lifecycle:
//
//	Created → Predicted → Confirmed | RolledBack
//
// The engine runs an intent in four steps: cancel in-flight fetches for
// the affected resources, snapshot every cached view that contains the
// target entity, apply the predicted delta synchronously (visible to
// readers before the network call settles), then dispatch the network
// operation. Success marks the affected views stale so a background
// refetch reconciles with server-authoritative state; failure restores
// every snapshot verbatim and surfaces the original error.
//
// Snapshots live on the intent record itself, not in ambient state, so
// there is never ambiguity about what a rollback restores. Mutations
// against the same entity key are serialized: a second trigger waits for
// the first to resolve and then layers its prediction on the then-current
// cached value, which closes the lost-update race between a rollback and
// a newer prediction.
//
// Creating a post is the degenerate case with no pre-existing entity:
// RunAppend applies nothing up front and, only on success, prepends the
// created entity to the first page of each feed view.
package mutation
