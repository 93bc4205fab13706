// Package client wraps HTTP access to the NeyborHuud REST API.
//
// The client attaches the bearer token from the session manager when one
// is present, passes every JSON body through the payload sanitizer,
// decodes the backend's response envelope {success, message, data,
// errors}, and converts every failure into a structured *apierr.Error —
// it never panics on a handled HTTP error code and always resolves to
// either data or an error carrying the status.
//
// Two transport quirks are normalized here: an HTML error page returned
// where JSON was expected becomes a synthesized endpoint-not-found
// message, and a fatal 401 (a token problem, as opposed to a
// permissions-style 401) destroys the stored session through the session
// manager. The classification between those two is delegated to
// package apierr.
//
//	cli, err := client.New(cfg,
//		client.WithSessions(sessions),
//		client.WithMetrics(client.NewCollector(prometheus.DefaultRegisterer)),
//	)
//	resp, err := cli.Get(ctx, "/feed", url.Values{"lat": {"6.52"}})
package client
