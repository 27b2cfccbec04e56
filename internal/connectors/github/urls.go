package github

import (
	"regexp"
	"strings"
)

const (
	// CanonicalBaseURL is the host of repository URLs written by this connector.
	CanonicalBaseURL = "https://github.com"

	// AlternateBaseURL is the host older repository definitions used.
	AlternateBaseURL = "http://www.github.org"
)

// repositoryURLPattern matches http(s)://(www.)github.(com|org)/user/project.
var repositoryURLPattern = regexp.MustCompile(`^https?://(?:www\.)?github\.(?:com|org)/([^/]+)/([^/]+?)/?$`)

// taskURLPattern matches the web URL of an issue, in the current
// /issues/<id> form or the legacy /issues/issue/<id> form.
var taskURLPattern = regexp.MustCompile(`^(https?://.+?)/issues/(?:issue/)?([^/]+)$`)

// RepositoryUser returns the user of a repository URL, or "" if it does not match.
func RepositoryUser(repositoryURL string) string {
	m := repositoryURLPattern.FindStringSubmatch(strings.TrimSpace(repositoryURL))
	if m == nil {
		return ""
	}
	return m[1]
}

// RepositoryProject returns the project of a repository URL, or "" if it does not match.
func RepositoryProject(repositoryURL string) string {
	m := repositoryURLPattern.FindStringSubmatch(strings.TrimSpace(repositoryURL))
	if m == nil {
		return ""
	}
	return m[2]
}

// IsRepositoryURL reports whether url names a GitHub user/project.
func IsRepositoryURL(url string) bool {
	return repositoryURLPattern.MatchString(strings.TrimSpace(url))
}

// IsValidURL is the loose check applied before any network test.
func IsValidURL(url string) bool {
	return strings.Contains(url, "github")
}

// CanonicalURL returns https://github.com/user/project.
func CanonicalURL(user, project string) string {
	return CanonicalBaseURL + "/" + user + "/" + project
}

// AlternateURL returns http://www.github.org/user/project.
func AlternateURL(user, project string) string {
	return AlternateBaseURL + "/" + user + "/" + project
}

// NormalizeRepositoryURL rewrites any accepted repository URL to its canonical form.
// Returns ErrInvalidServerURL if url is not a repository URL.
func NormalizeRepositoryURL(url string) (string, error) {
	m := repositoryURLPattern.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return "", ErrInvalidServerURL
	}
	return CanonicalURL(m[1], m[2]), nil
}

// TaskURL returns <repositoryURL>/issues/<taskID>.
func TaskURL(repositoryURL, taskID string) string {
	return strings.TrimSuffix(repositoryURL, "/") + "/issues/" + taskID
}

// RepositoryURLFromTaskURL extracts the repository URL from a task URL.
func RepositoryURLFromTaskURL(taskURL string) string {
	m := taskURLPattern.FindStringSubmatch(strings.TrimSpace(taskURL))
	if m == nil {
		return ""
	}
	return m[1]
}

// TaskIDFromTaskURL extracts the task ID from a task URL.
func TaskIDFromTaskURL(taskURL string) string {
	m := taskURLPattern.FindStringSubmatch(strings.TrimSpace(taskURL))
	if m == nil {
		return ""
	}
	return m[2]
}
