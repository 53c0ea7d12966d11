// Package claims derives credential claims from account activity.
package claims

import (
	"time"

	"github.com/Decentr-net/themis/internal/credential"
	"github.com/Decentr-net/themis/internal/github"
	"github.com/Decentr-net/themis/internal/id"
	"github.com/Decentr-net/themis/internal/languages"
)

// Criteria names.
const (
	AccountCreation = "accountCreation"
	Followers       = "followers"
	TotalStars      = "totalStars"
	TotalPRsMerged  = "totalPRsMerged"
	TotalCommits    = "totalCommits"
	TopLanguages    = "top5Languages"
)

// TopLanguagesCount is the number of languages in TopLanguages claim.
const TopLanguagesCount = 5

// followersPrecision is the count of followers kept exact.
const followersPrecision = 100

// Derive returns claims in fixed order. Counters equal to zero produce no claim.
func Derive(s github.AccountSnapshot, ranking languages.Ranking, createdAt time.Time) []credential.Claim {
	out := []credential.Claim{
		claim(AccountCreation, credential.ConditionEqual, credential.TimeValue(month(createdAt))),
	}

	if s.Followers > 0 {
		out = append(out, claim(Followers, credential.ConditionGreaterEqual, credential.IntValue(roundFollowers(s.Followers))))
	}

	for _, v := range []struct {
		criteria string
		value    int
	}{
		{TotalStars, s.TotalStars},
		{TotalPRsMerged, s.TotalPRsMerged},
		{TotalCommits, s.TotalCommits},
	} {
		if v.value > 0 {
			out = append(out, claim(v.criteria, credential.ConditionEqual, credential.IntValue(int64(v.value))))
		}
	}

	if top := ranking.Top(TopLanguagesCount); len(top) > 0 {
		out = append(out, claim(TopLanguages, credential.ConditionEqual, credential.ListValue(top)))
	}

	return out
}

func claim(criteria, condition string, v credential.Value) credential.Claim {
	return credential.Claim{
		ID:        id.New(),
		Platform:  credential.Platform,
		Criteria:  criteria,
		Condition: condition,
		Value:     v,
	}
}

// month truncates t to the first instant of its month in UTC.
func month(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// roundFollowers floors counts above 100 to a multiple of 10.
func roundFollowers(n int) int64 {
	if n <= followersPrecision {
		return int64(n)
	}
	return int64(n / 10 * 10)
}
