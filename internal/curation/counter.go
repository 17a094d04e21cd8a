package curation

import "slices"

// counter tallies category occurrences while remembering first-seen
// order. Every ranked or histogram output of the engine is built on it
// so that equal counts resolve deterministically: whichever category
// appeared first wins.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

// add increments a category, ignoring empty values.
func (c *counter) add(category string) {
	if category == "" {
		return
	}
	if _, seen := c.counts[category]; !seen {
		c.order = append(c.order, category)
	}
	c.counts[category]++
}

// total returns the sum of all counts.
func (c *counter) total() int {
	var n int
	for _, count := range c.counts {
		n += count
	}
	return n
}

// entries returns category/count pairs in first-seen order.
func (c *counter) entries() []CategoryCount {
	entries := make([]CategoryCount, 0, len(c.order))
	for _, category := range c.order {
		entries = append(entries, CategoryCount{Category: category, Count: c.counts[category]})
	}
	return entries
}

// top returns up to n categories ranked by count descending. The sort
// is stable over first-seen order, so ties keep their insertion rank.
func (c *counter) top(n int) []string {
	ranked := c.entries()
	slices.SortStableFunc(ranked, func(a, b CategoryCount) int {
		return b.Count - a.Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	categories := make([]string, len(ranked))
	for i, entry := range ranked {
		categories[i] = entry.Category
	}
	return categories
}
