package matching

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/jonathan/career-pathfinder/internal/skills"
)

// ErrNoKeywordMatch is returned when neither keywords nor skills link a
// profile to any role.
var ErrNoKeywordMatch = errors.New("no role shares keywords or skills with the profile")

type roleDocument struct {
	Title  string `json:"title"`
	Skills string `json:"skills"`
}

// KeywordMatcher resolves the current role without embeddings. It scores
// roles with a full-text query over titles and skills, and falls back to
// counting shared skills when the query has no hits.
type KeywordMatcher struct {
	index  bleve.Index
	titles []string
	skills []skills.Set
}

// NewKeywordMatcher indexes every role of src in memory.
func NewKeywordMatcher(src RoleSource) (*KeywordMatcher, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create keyword index: %w", err)
	}

	titles := src.AllRoles()
	km := &KeywordMatcher{
		index:  index,
		titles: titles,
		skills: make([]skills.Set, len(titles)),
	}

	batch := index.NewBatch()
	for i, title := range titles {
		roleSkills := src.SkillsOf(title)
		km.skills[i] = roleSkills

		doc := roleDocument{Title: title, Skills: strings.Join(roleSkills.Sorted(), " ")}
		if err := batch.Index(strconv.Itoa(i), doc); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to index role %q: %w", title, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to index roles: %w", err)
	}

	return km, nil
}

// Len returns the number of indexed roles
func (k *KeywordMatcher) Len() int {
	return len(k.titles)
}

// ClosestRole returns the best keyword match for the profile. Ties go to the
// role registered first.
func (k *KeywordMatcher) ClosestRole(known skills.Set, resumeText string) (string, error) {
	if len(k.titles) == 0 {
		return "", &NoRolesAvailableError{}
	}

	queryText := strings.TrimSpace(strings.Join(known.Sorted(), " ") + " " + resumeText)
	if queryText != "" {
		req := bleve.NewSearchRequest(bleve.NewMatchQuery(queryText))
		req.Size = len(k.titles)

		res, err := k.index.Search(req)
		if err != nil {
			return "", fmt.Errorf("keyword search failed: %w", err)
		}

		bestIdx := -1
		bestScore := 0.0
		for _, hit := range res.Hits {
			idx, err := strconv.Atoi(hit.ID)
			if err != nil || idx < 0 || idx >= len(k.titles) {
				continue
			}
			if bestIdx == -1 || hit.Score > bestScore || (hit.Score == bestScore && idx < bestIdx) {
				bestIdx = idx
				bestScore = hit.Score
			}
		}
		if bestIdx >= 0 {
			return k.titles[bestIdx], nil
		}
	}

	return k.closestBySkillOverlap(known)
}

func (k *KeywordMatcher) closestBySkillOverlap(known skills.Set) (string, error) {
	bestIdx := -1
	bestOverlap := 0
	for i, roleSkills := range k.skills {
		overlap := roleSkills.Intersect(known).Len()
		if overlap > bestOverlap {
			bestIdx = i
			bestOverlap = overlap
		}
	}
	if bestIdx < 0 {
		return "", ErrNoKeywordMatch
	}
	return k.titles[bestIdx], nil
}

// Close releases the index
func (k *KeywordMatcher) Close() error {
	return k.index.Close()
}
