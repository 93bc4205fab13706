// Package content exposes the posts, feed, and comments surface of the
// NeyborHuud backend.
//
// Reads populate the shared cache so optimistic writes have views to
// rewrite. Engagement actions (like, save, share) run through the
// mutation engine: the cached post and every cached feed page are
// updated before the network call and rolled back if it fails.
//
//	svc, err := content.NewService(api, store, engine)
//	page, err := svc.Feed(ctx, 6.5244, 3.3792, 1, 10)
//	if err := svc.Like(ctx, page.Posts[0].ID); err != nil { ... }
//
// The feed endpoint on some deployments is incomplete; Feed falls back
// to the neighborhood post listing when the route is missing or the
// backend errors.
package content
