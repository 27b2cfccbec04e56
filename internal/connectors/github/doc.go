// Package github implements a task repository connector for GitHub Issues.
//
// The connector lets the generic task model (queries, task data, local
// task list) drive GitHub's issue trackers. A repository is identified by
// its web URL, https://github.com/{user}/{project}.
//
// # Architecture
//
// The package follows the driven port pattern defined in
// [driven.RepositoryConnector]. It comprises the following components:
//
//   - Connector: runs queries, fetches and posts task data, validates settings
//   - TaskDataHandler: maps issues to task data and back
//   - Service: client for the legacy v2 JSON API (form-encoded POSTs)
//   - Client: client for the REST v3 API, built on go-github
//   - ServiceFactory: picks Service or Client from the repository's API version
//   - FindHyperlinks: detects "#12", "user#12" and "user/project#12" references
//
// # Legacy API
//
// The v2 API lives under https://github.com/api/v2/json/. Every path
// segment is URL-escaped and appended to a fixed template, for example
// issues/show/{user}/{repo}/{number}. Write calls carry the login and API
// token as form fields. Status 200 is success, 401 and 403 map to
// [domain.ErrPermissionDenied], anything else is a [ServiceError].
// There are no retries.
//
// # REST API
//
// The v3 client authenticates with a static OAuth2 token source and throttles
// requests with the dual-strategy [RateLimiter]: a token bucket at about
// 1.2 requests per second, plus X-RateLimit-* header tracking that waits for
// the reset once the remaining quota runs low.
//
// # Example Usage
//
//	factory := github.NewServiceFactory(settings.GitHub)
//	connector := github.New(factory)
//
//	err := connector.PerformQuery(ctx, repo, creds, query, collect, monitor)
package github
