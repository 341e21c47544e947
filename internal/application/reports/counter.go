package reports

import "sort"

// counter counts string keys and remembers first-seen order so rankings
// break ties the same way every run.
type counter struct {
	order  []string
	counts map[string]int
}

type entry struct {
	Key   string
	Count int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

// newCounterOf starts every key at zero, in the given order.
func newCounterOf(keys []string) *counter {
	c := newCounter()
	for _, k := range keys {
		if _, ok := c.counts[k]; !ok {
			c.order = append(c.order, k)
			c.counts[k] = 0
		}
	}
	return c
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// keys returns the keys in first-seen order.
func (c *counter) keys() []string { return c.order }

// mostCommon returns up to n entries by descending count; n <= 0 means all.
func (c *counter) mostCommon(n int) []entry {
	out := make([]entry, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, entry{Key: k, Count: c.counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// snapshot copies the counts map.
func (c *counter) snapshot() map[string]int {
	m := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		m[k] = v
	}
	return m
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
