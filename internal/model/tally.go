package model

// TagCount is one row of the tag tally.
type TagCount struct {
	Tag   string
	Count uint64
}

// TagCounts is an insertion-ordered tag tally. Go maps iterate in random
// order, so the order of first insertion is tracked separately to keep the
// output reproducible between runs.
type TagCounts struct {
	counts map[string]uint64
	order  []string
}

// NewTagCounts creates an empty tag tally.
func NewTagCounts() *TagCounts {
	return &TagCounts{counts: make(map[string]uint64)}
}

// Add increments the count for a tag, registering it on first sight.
func (t *TagCounts) Add(tag string, n uint64) {
	if _, ok := t.counts[tag]; !ok {
		t.order = append(t.order, tag)
	}
	t.counts[tag] += n
}

// Get returns the current count for a tag.
func (t *TagCounts) Get(tag string) (uint64, bool) {
	n, ok := t.counts[tag]
	return n, ok
}

// Len returns the number of distinct tags.
func (t *TagCounts) Len() int {
	return len(t.order)
}

// Items returns the tally rows in insertion order.
func (t *TagCounts) Items() []TagCount {
	items := make([]TagCount, 0, len(t.order))
	for _, tag := range t.order {
		items = append(items, TagCount{Tag: tag, Count: t.counts[tag]})
	}
	return items
}

// KeyCount is one row of the port/protocol tally.
type KeyCount struct {
	Key   LookupKey
	Count uint64
}

// PortProtocolCounts is an insertion-ordered (port, protocol) tally.
type PortProtocolCounts struct {
	counts map[LookupKey]uint64
	order  []LookupKey
}

// NewPortProtocolCounts creates an empty port/protocol tally.
func NewPortProtocolCounts() *PortProtocolCounts {
	return &PortProtocolCounts{counts: make(map[LookupKey]uint64)}
}

// Add increments the count for a key, registering it on first sight.
func (p *PortProtocolCounts) Add(key LookupKey, n uint64) {
	if _, ok := p.counts[key]; !ok {
		p.order = append(p.order, key)
	}
	p.counts[key] += n
}

// Get returns the current count for a key.
func (p *PortProtocolCounts) Get(key LookupKey) (uint64, bool) {
	n, ok := p.counts[key]
	return n, ok
}

// Len returns the number of distinct keys.
func (p *PortProtocolCounts) Len() int {
	return len(p.order)
}

// Items returns the tally rows in insertion order.
func (p *PortProtocolCounts) Items() []KeyCount {
	items := make([]KeyCount, 0, len(p.order))
	for _, key := range p.order {
		items = append(items, KeyCount{Key: key, Count: p.counts[key]})
	}
	return items
}
