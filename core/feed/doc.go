// Package feed provides a page-based cursor over any listing endpoint.
//
// A Cursor wraps a fetch function and tracks the current page, the
// accumulated items, and whether more pages remain. Concurrent calls for
// the same page are collapsed into a single fetch, and items already seen
// are dropped so a feed that shifts between page loads never shows
// duplicates.
//
//	cursor := feed.NewCursor(fetchPosts, func(p Post) string { return p.ID })
//	for {
//		items, err := cursor.Next(ctx)
//		if errors.Is(err, feed.ErrNoMorePages) {
//			break
//		}
//		render(items)
//	}
package feed
