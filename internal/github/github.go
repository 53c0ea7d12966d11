// Package github contains aggregation of GitHub account activity.
package github

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/themis/internal/languages"
)

//go:generate mockgen -destination=./mock/github.go -package=mock -source=github.go

var log = logrus.WithField("package", "github")

// Flags controls what is aggregated.
type Flags struct {
	// IncludeAllCommits counts commits with commit search instead of contributions summary.
	IncludeAllCommits         bool
	IncludeMergedPullRequests bool
	IncludeDiscussions        bool
	IncludeDiscussionsAnswers bool
	// MultiPage enables fetching repositories beyond the first page.
	MultiPage bool
}

// AccountSnapshot is activity counters of one account.
type AccountSnapshot struct {
	Name      string    `json:"name"`
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"createdAt"`
	Followers int       `json:"followers"`

	TotalCommits   int `json:"totalCommits"`
	TotalPRs       int `json:"totalPRs"`
	TotalPRsMerged int `json:"totalPRsMerged"`
	// MergedPRsPercentage is nil when not requested or when there are no pull requests.
	MergedPRsPercentage      *float64 `json:"mergedPRsPercentage,omitempty"`
	TotalReviews             int      `json:"totalReviews"`
	TotalIssues              int      `json:"totalIssues"`
	TotalDiscussionsStarted  int      `json:"totalDiscussionsStarted"`
	TotalDiscussionsAnswered int      `json:"totalDiscussionsAnswered"`
	ContributedTo            int      `json:"contributedTo"`
	TotalStars               int      `json:"totalStars"`
}

// Aggregator fetches account activity.
type Aggregator interface {
	// Aggregate returns activity counters of account with login.
	Aggregate(ctx context.Context, login string, flags Flags, token string) (AccountSnapshot, error)
	// Viewer returns the user owning token.
	Viewer(ctx context.Context, token string) (Viewer, error)
	// Languages returns owned non-fork repositories with their languages.
	Languages(ctx context.Context, login string, token string) ([]languages.Repository, error)
}

type aggregator struct {
	c Client
}

// NewAggregator returns new instance of Aggregator.
func NewAggregator(c Client) Aggregator {
	return &aggregator{
		c: c,
	}
}

type count struct {
	TotalCount int `json:"totalCount"`
}

type repoNode struct {
	Name       string `json:"name"`
	Stargazers count  `json:"stargazers"`
}

type reposPage struct {
	Nodes    []repoNode `json:"nodes"`
	PageInfo struct {
		HasNextPage bool   `json:"hasNextPage"`
		EndCursor   string `json:"endCursor"`
	} `json:"pageInfo"`
}

type statsUser struct {
	Name                    string    `json:"name"`
	Login                   string    `json:"login"`
	CreatedAt               time.Time `json:"createdAt"`
	ContributionsCollection struct {
		TotalCommitContributions            int `json:"totalCommitContributions"`
		TotalPullRequestReviewContributions int `json:"totalPullRequestReviewContributions"`
	} `json:"contributionsCollection"`
	RepositoriesContributedTo    count     `json:"repositoriesContributedTo"`
	PullRequests                 count     `json:"pullRequests"`
	MergedPullRequests           *count    `json:"mergedPullRequests"`
	OpenIssues                   count     `json:"openIssues"`
	ClosedIssues                 count     `json:"closedIssues"`
	Followers                    count     `json:"followers"`
	RepositoryDiscussions        *count    `json:"repositoryDiscussions"`
	RepositoryDiscussionComments *count    `json:"repositoryDiscussionComments"`
	Repositories                 reposPage `json:"repositories"`
}

// Aggregate fetches stats and repositories page by page. Pagination stops on the first page
// holding a repository without stars, on the last page or after the first page when multi-page is off.
func (a *aggregator) Aggregate(ctx context.Context, login string, flags Flags, token string) (AccountSnapshot, error) {
	if login == "" {
		return AccountSnapshot{}, missingParameter("username")
	}

	var (
		user  *statsUser
		nodes []repoNode
		after *string
	)

	for {
		query := statsQuery
		if after != nil {
			query = reposQuery
		}

		var resp struct {
			User *statsUser `json:"user"`
		}
		if err := a.c.Query(ctx, query, map[string]interface{}{
			"login":                     login,
			"after":                     after,
			"includeMergedPullRequests": flags.IncludeMergedPullRequests,
			"includeDiscussions":        flags.IncludeDiscussions,
			"includeDiscussionsAnswers": flags.IncludeDiscussionsAnswers,
		}, token, &resp); err != nil {
			return AccountSnapshot{}, fmt.Errorf("failed to query stats: %w", err)
		}
		if resp.User == nil {
			return AccountSnapshot{}, newError(ErrUserNotFound, "Could not fetch user.")
		}
		if user == nil {
			user = resp.User
		}

		page := resp.User.Repositories
		nodes = append(nodes, page.Nodes...)

		if !flags.MultiPage || !page.PageInfo.HasNextPage || hasZeroStars(page.Nodes) {
			break
		}

		cursor := page.PageInfo.EndCursor
		after = &cursor
		log.WithField("login", login).WithField("repos", len(nodes)).Debug("fetch next repositories page")
	}

	s := AccountSnapshot{
		Name:          user.Name,
		Login:         user.Login,
		CreatedAt:     user.CreatedAt,
		Followers:     user.Followers.TotalCount,
		TotalCommits:  user.ContributionsCollection.TotalCommitContributions,
		TotalPRs:      user.PullRequests.TotalCount,
		TotalReviews:  user.ContributionsCollection.TotalPullRequestReviewContributions,
		TotalIssues:   user.OpenIssues.TotalCount + user.ClosedIssues.TotalCount,
		ContributedTo: user.RepositoriesContributedTo.TotalCount,
	}
	if s.Name == "" {
		s.Name = user.Login
	}

	if flags.IncludeAllCommits {
		total, err := a.c.SearchCommits(ctx, "author:"+login, token)
		if err != nil {
			return AccountSnapshot{}, fmt.Errorf("failed to search commits: %w", err)
		}
		s.TotalCommits = total
	}

	if flags.IncludeMergedPullRequests && user.MergedPullRequests != nil {
		s.TotalPRsMerged = user.MergedPullRequests.TotalCount
		if s.TotalPRs > 0 {
			p := float64(s.TotalPRsMerged) / float64(s.TotalPRs) * 100
			s.MergedPRsPercentage = &p
		}
	}

	if flags.IncludeDiscussions && user.RepositoryDiscussions != nil {
		s.TotalDiscussionsStarted = user.RepositoryDiscussions.TotalCount
	}
	if flags.IncludeDiscussionsAnswers && user.RepositoryDiscussionComments != nil {
		s.TotalDiscussionsAnswered = user.RepositoryDiscussionComments.TotalCount
	}

	for _, v := range nodes {
		s.TotalStars += v.Stargazers.TotalCount
	}

	return s, nil
}

func hasZeroStars(nodes []repoNode) bool {
	for _, v := range nodes {
		if v.Stargazers.TotalCount == 0 {
			return true
		}
	}
	return false
}

// Viewer ...
func (a *aggregator) Viewer(ctx context.Context, token string) (Viewer, error) {
	if token == "" {
		return Viewer{}, missingParameter("token")
	}

	v, err := a.c.Viewer(ctx, token)
	if err != nil {
		return Viewer{}, fmt.Errorf("failed to get viewer: %w", err)
	}

	return v, nil
}

// Languages ...
func (a *aggregator) Languages(ctx context.Context, login string, token string) ([]languages.Repository, error) {
	if login == "" {
		return nil, missingParameter("username")
	}

	var resp struct {
		User *struct {
			Repositories struct {
				Nodes []struct {
					Name      string `json:"name"`
					Languages struct {
						Edges []struct {
							Size int64 `json:"size"`
							Node struct {
								Color string `json:"color"`
								Name  string `json:"name"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"languages"`
				} `json:"nodes"`
			} `json:"repositories"`
		} `json:"user"`
	}
	if err := a.c.Query(ctx, languagesQuery, map[string]interface{}{"login": login}, token, &resp); err != nil {
		return nil, fmt.Errorf("failed to query languages: %w", err)
	}
	if resp.User == nil {
		return nil, newError(ErrUserNotFound, "Could not fetch user.")
	}

	out := make([]languages.Repository, 0, len(resp.User.Repositories.Nodes))
	for _, n := range resp.User.Repositories.Nodes {
		r := languages.Repository{Name: n.Name}
		for _, e := range n.Languages.Edges {
			r.Languages = append(r.Languages, languages.Edge{
				Size:  e.Size,
				Name:  e.Node.Name,
				Color: e.Node.Color,
			})
		}
		out = append(out, r)
	}

	return out, nil
}
