package github

import (
	"regexp"

	"github.com/custodia-labs/ghtask/internal/core/domain"
	"github.com/custodia-labs/ghtask/internal/core/ports/driven"
)

// issueRefPattern matches "#12", "user#12" and "user/project#12".
var issueRefPattern = regexp.MustCompile(`(?:([a-zA-Z0-9_.-]+)(?:/([a-zA-Z0-9_.-]+))?)?#(\d+)`)

// FindHyperlinks returns the issue references in text. With index -1
// every reference is returned, otherwise only those whose match covers
// index. Regions are shifted by offset.
//
// A bare "#12" refers to repo. "user#12" refers to the project of repo
// under another user. "user/project#12" is resolved through lookup by its
// canonical URL, then its alternate URL; when neither is registered the
// link points at the issue on github.com.
func FindHyperlinks(
	repo domain.TaskRepository, text string, index, offset int, lookup driven.RepositoryLookup,
) []driven.TaskHyperlink {
	var links []driven.TaskHyperlink

	for _, m := range issueRefPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		if index != -1 && (index < start || index > end) {
			continue
		}

		user := group(text, m, 1)
		project := group(text, m, 2)
		taskID := group(text, m, 3)

		if project == "" && user != "" {
			project = RepositoryProject(repo.URL)
		}

		var target *domain.TaskRepository
		switch {
		case user == "" && project == "":
			target = &repo
		case user != "" && project != "" && lookup != nil:
			target = lookup(CanonicalURL(user, project))
			if target == nil {
				target = lookup(AlternateURL(user, project))
			}
		}

		link := driven.TaskHyperlink{Offset: start + offset, Length: end - start}
		switch {
		case target != nil:
			link.RepositoryURL = target.URL
			link.TaskID = taskID
		case user != "" && project != "":
			link.WebURL = TaskURL(CanonicalURL(user, project), taskID)
		default:
			continue
		}
		links = append(links, link)
	}
	return links
}

// group returns submatch i, or "" when it did not participate.
func group(text string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return text[m[2*i]:m[2*i+1]]
}
