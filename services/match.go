package services

import (
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// MatchConfig holds the business-tunable knobs of the matching engine.
type MatchConfig struct {
	// Threshold is the minimum fuzzy similarity in [0,1] a candidate must
	// reach to be accepted when neither code nor normalized name matches
	// exactly.
	Threshold float64 `json:"threshold"`
}

func DefaultMatchConfig() MatchConfig {
	return MatchConfig{Threshold: 0.80}
}

// quoteFolds maps typographic quote variants to their ASCII forms so that
// master data typed in different editors still compares equal.
var quoteFolds = strings.NewReplacer(
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"`", "'",
	"´", "'", // acute accent
)

// Normalize prepares a name for comparison: trim, fold quote variants,
// collapse internal whitespace, lower-case.
func Normalize(s string) string {
	folded := quoteFolds.Replace(strings.TrimSpace(s))
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

// Similarity is an edit-distance ratio in [0,1] over already-normalized
// strings: 1 means identical, 0 means nothing in common.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// Matcher resolves line items against a domain's master catalog.
type Matcher struct {
	Catalog Catalog
	Config  MatchConfig
}

// MatchSheet resolves every item in place: Matched, Similarity and CatalogID
// are set on hits, and the matched entries are returned aligned by index
// (nil for unmatched). The exact code and exact name steps go through the
// catalog's Find/FindByName lookups; only the fuzzy pass scans the full
// entry list. Items are matched concurrently; the indexed result slice
// keeps them in original row order regardless of completion order.
// A catalog access failure downgrades the affected items to unmatched and
// is returned for visibility.
func (m *Matcher) MatchSheet(domain Domain, items []LineItem) ([]*CatalogEntry, error) {
	matches := make([]*CatalogEntry, len(items))

	entries, err := m.Catalog.All(domain)
	if err != nil {
		log.Printf("match: %v; all items of this sheet proceed unmatched", err)
		return matches, err
	}
	// Stable candidate order makes tie-breaking by lowest internal id a
	// plain first-wins scan.
	sort.Slice(entries, func(i, j int) bool { return entries[i].InternalID < entries[j].InternalID })

	var wg sync.WaitGroup
	errs := make([]error, len(items))
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry, score, err := m.match(domain, &items[i], entries)
			if err != nil {
				errs[i] = err
				return
			}
			if entry != nil {
				items[i].Matched = true
				items[i].Similarity = score
				items[i].CatalogID = entry.InternalID
				matches[i] = entry
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			log.Printf("match: %v; affected items proceed unmatched", err)
			return matches, err
		}
	}
	return matches, nil
}

// match runs the resolution ladder for one item: exact code, exact
// normalized name, then best fuzzy candidate above the threshold.
// Deterministic for identical inputs.
func (m *Matcher) match(domain Domain, item *LineItem, entries []CatalogEntry) (*CatalogEntry, float64, error) {
	if item.Code != "" {
		hits, err := m.Catalog.Find(domain, item.Code)
		if err != nil {
			return nil, 0, err
		}
		if e := lowestID(hits); e != nil {
			return e, 1, nil
		}
	}

	name := Normalize(item.Name)
	if name == "" {
		return nil, 0, nil
	}
	hits, err := m.Catalog.FindByName(domain, name)
	if err != nil {
		return nil, 0, err
	}
	if e := lowestID(hits); e != nil {
		return e, 1, nil
	}

	var best *CatalogEntry
	bestScore := 0.0
	for i := range entries {
		score := Similarity(name, Normalize(entries[i].Name))
		if score > bestScore {
			bestScore = score
			best = &entries[i]
		}
	}
	if best != nil && bestScore >= m.Config.Threshold {
		return best, bestScore, nil
	}
	return nil, 0, nil
}

// lowestID picks the hit with the smallest internal id so duplicate exact
// matches resolve deterministically.
func lowestID(hits []CatalogEntry) *CatalogEntry {
	var best *CatalogEntry
	for i := range hits {
		if best == nil || hits[i].InternalID < best.InternalID {
			best = &hits[i]
		}
	}
	return best
}
