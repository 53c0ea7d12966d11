// Package languages ranks programming-language usage across repositories.
package languages

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Default weights of composite score.
const (
	DefaultSizeWeight  = 1
	DefaultCountWeight = 0
)

// Edge is a language used in a repository with its size in bytes.
type Edge struct {
	Size  int64  `json:"size"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Repository is a repository with its language edges.
type Repository struct {
	Name      string `json:"name"`
	Languages []Edge `json:"languages"`
}

// Language is accumulated usage of one language.
type Language struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	// Size is the sum of bytes across repositories.
	Size int64 `json:"size"`
	// Count is the number of repositories using the language.
	Count int `json:"count"`
}

// Usage maps language name to its accumulated usage.
type Usage map[string]Language

// Ranked is a language with its composite score.
type Ranked struct {
	Language
	Score float64 `json:"score"`
}

// Ranking is languages ordered by descending score.
type Ranking []Ranked

// Accumulate folds language edges of repositories into usage.
// Repositories named in exclude are skipped.
func Accumulate(repos []Repository, exclude []string) Usage {
	hidden := make(map[string]struct{}, len(exclude))
	for _, v := range exclude {
		hidden[v] = struct{}{}
	}

	u := Usage{}
	for _, r := range repos {
		if _, ok := hidden[r.Name]; ok {
			continue
		}

		for _, e := range r.Languages {
			l, ok := u[e.Name]
			if !ok {
				l = Language{Name: e.Name, Color: e.Color}
			}
			l.Size += e.Size
			l.Count++
			u[e.Name] = l
		}
	}

	return u
}

// Weighted returns composite score size^sizeWeight * count^countWeight.
func (l Language) Weighted(sizeWeight, countWeight float64) float64 {
	return math.Pow(float64(l.Size), sizeWeight) * math.Pow(float64(l.Count), countWeight)
}

// Rank returns usage ordered by descending score. Equal scores are ordered by name.
func (u Usage) Rank(sizeWeight, countWeight float64) Ranking {
	out := make(Ranking, 0, len(u))
	for _, l := range u {
		out = append(out, Ranked{
			Language: l,
			Score:    l.Weighted(sizeWeight, countWeight),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})

	return out
}

// Rank accumulates repositories' languages and ranks them.
func Rank(repos []Repository, exclude []string, sizeWeight, countWeight float64) Ranking {
	return Accumulate(repos, exclude).Rank(sizeWeight, countWeight)
}

// Top returns names of first n languages.
func (r Ranking) Top(n int) []string {
	if n > len(r) {
		n = len(r)
	}
	if n < 0 {
		n = 0
	}

	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = r[i].Name
	}
	return out
}

// MarshalJSON encodes ranking as JSON object keyed by language name, keeping rank order.
func (r Ranking) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, v := range r {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(v.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal key: %w", err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", v.Name, err)
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(b)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes ranking from JSON object keeping the order of keys.
func (r *Ranking) UnmarshalJSON(b []byte) error {
	d := json.NewDecoder(bytes.NewReader(b))

	t, err := d.Token()
	if err != nil {
		return err
	}
	if t == nil {
		*r = nil
		return nil
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ranking must be an object")
	}

	out := Ranking{}
	for d.More() {
		if _, err := d.Token(); err != nil {
			return err
		}

		var v Ranked
		if err := d.Decode(&v); err != nil {
			return err
		}
		out = append(out, v)
	}

	if _, err := d.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}
