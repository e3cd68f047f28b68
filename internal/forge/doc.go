// Package forge talks to the hosted repository service over its JSON API.
//
// # Gateway
//
// [Gateway] is the only component that performs HTTP exchanges. It accepts
// either a path relative to the configured API origin or an absolute URL taken
// from a previous response (for example a pull request's comments_url) and
// handles both the same way:
//
//	gw := forge.NewGateway(cfg.Forge.APIURL, store, forge.NewHTTPTransport(cfg.HTTP.Timeout, cfg.HTTP.UserAgent))
//	var pr forge.PullRequest
//	err := gw.Read(ctx, forge.PullRequestPath(repo, 7), &pr)
//
// Read works without credentials. Create requires a stored token or an explicit
// [BasicCredentials] override (used by login). Update always requires a stored
// token. Both fail with [ErrAuthRequired] before any request is sent.
//
// # Errors
//
// Failures are classified into [UsageError], [EnvironmentError],
// [TransportError], [APIError] and [ErrAuthRequired]. None of them are retried.
package forge
