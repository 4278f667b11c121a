package metrics

import "sort"

// Entry is one computed metric as handed to renderers.
type Entry struct {
	Key         string
	Section     string
	Label       string
	Prefix      string
	Explanation string
	Value       Value
}

// Set is the ordered result of one engine pass. A key that is absent means the
// metric had no data to stand on; a present zero is a confirmed zero.
type Set struct {
	entries []Entry
	index   map[string]int
}

func newSet() *Set {
	return &Set{index: make(map[string]int)}
}

// add records key with its catalog label and explanation.
func (s *Set) add(key string, v Value) *Entry {
	d := definitions[key]
	return s.put(Entry{
		Key:         key,
		Section:     d.Section,
		Label:       d.Label,
		Prefix:      d.Prefix,
		Explanation: d.Explanation,
		Value:       v,
	})
}

func (s *Set) put(e Entry) *Entry {
	if i, ok := s.index[e.Key]; ok {
		s.entries[i] = e
		return &s.entries[i]
	}
	s.index[e.Key] = len(s.entries)
	s.entries = append(s.entries, e)
	return &s.entries[len(s.entries)-1]
}

// sortByCatalog puts entries in catalog order; it runs once after computation.
func (s *Set) sortByCatalog() {
	sort.SliceStable(s.entries, func(i, j int) bool {
		return catalogOrder[s.entries[i].Key] < catalogOrder[s.entries[j].Key]
	})
	for i, e := range s.entries {
		s.index[e.Key] = i
	}
}

func (s Set) Get(key string) (Entry, bool) {
	i, ok := s.index[key]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

func (s Set) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Number returns the scalar value of key, false when absent or not a scalar.
func (s Set) Number(key string) (float64, bool) {
	e, ok := s.Get(key)
	if !ok || e.Value.Kind != KindScalar {
		return 0, false
	}
	return e.Value.Number, true
}

func (s Set) Len() int { return len(s.entries) }

// Entries returns a copy of every entry in catalog order.
func (s Set) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Section returns the entries of one section in catalog order.
func (s Set) Section(name string) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if e.Section == name {
			out = append(out, e)
		}
	}
	return out
}

// Select resolves keys in the given order, skipping the ones not computed.
func (s Set) Select(keys []string) []Entry {
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		if e, ok := s.Get(k); ok {
			out = append(out, e)
		}
	}
	return out
}
