package engine

import "sort"

type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

const ttStaleGenerations = 8

type TTEntry struct {
	Key        uint64
	Depth      int
	Score      int
	Flag       TTFlag
	BestMove   Move
	Hits       uint32
	GenWritten uint32
	Valid      bool
}

// TranspositionTable is a fixed-capacity, set-associative cache of search
// results keyed by position hash (stones and side to move). It is owned by a
// single game session and is not safe for concurrent use.
type TranspositionTable struct {
	mask    uint64
	buckets int
	entries []TTEntry
	gen     uint32
}

func NewTranspositionTable(size uint64, buckets int) *TranspositionTable {
	if buckets <= 0 {
		buckets = 2
	}
	if size < 1 {
		size = 1
	}
	if (size & (size - 1)) != 0 {
		size = nextPowerOfTwo(size)
	}
	return &TranspositionTable{
		mask:    size - 1,
		buckets: buckets,
		entries: make([]TTEntry, int(size)*buckets),
		gen:     1,
	}
}

func (tt *TranspositionTable) NextGeneration() {
	tt.gen++
	if tt.gen == 0 {
		tt.gen = 1
	}
}

func (tt *TranspositionTable) Generation() uint32 {
	return tt.gen
}

func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.gen = 1
}

func (tt *TranspositionTable) bucketIndex(key uint64) int {
	return int(key&tt.mask) * tt.buckets
}

func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	start := tt.bucketIndex(key)
	for i := 0; i < tt.buckets; i++ {
		entry := &tt.entries[start+i]
		if !entry.Valid || entry.Key != key {
			continue
		}
		entry.Hits++
		return *entry, true
	}
	return TTEntry{}, false
}

// Store inserts or overwrites the entry for key. A stored key is only
// overwritten by a result of the same or greater depth; otherwise a free slot
// is used, then a shallower or stale victim. It reports whether anything was
// written.
func (tt *TranspositionTable) Store(key uint64, depth int, score int, flag TTFlag, best Move) bool {
	start := tt.bucketIndex(key)
	fresh := TTEntry{
		Key:        key,
		Depth:      depth,
		Score:      score,
		Flag:       flag,
		BestMove:   best,
		GenWritten: tt.gen,
		Valid:      true,
	}

	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		entry := tt.entries[idx]
		if !entry.Valid || entry.Key != key {
			continue
		}
		if depth < entry.Depth {
			return false
		}
		tt.entries[idx] = fresh
		return true
	}

	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		if tt.entries[idx].Valid {
			continue
		}
		tt.entries[idx] = fresh
		return true
	}

	victim := -1
	victimClass := 0
	victimAge := uint32(0)
	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		entry := tt.entries[idx]
		class := replacementClass(entry, depth, tt.gen)
		if class == 0 {
			continue
		}
		age := tt.gen - entry.GenWritten
		if victim == -1 || class < victimClass || (class == victimClass && age > victimAge) {
			victim = idx
			victimClass = class
			victimAge = age
		}
	}
	if victim == -1 {
		return false
	}
	tt.entries[victim] = fresh
	return true
}

func (tt *TranspositionTable) TopEntriesByHits(offset int, limit int) ([]TTEntry, int) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	valid := make([]TTEntry, 0, len(tt.entries))
	for i := range tt.entries {
		if tt.entries[i].Valid {
			valid = append(valid, tt.entries[i])
		}
	}
	sort.Slice(valid, func(i, j int) bool {
		if valid[i].Hits != valid[j].Hits {
			return valid[i].Hits > valid[j].Hits
		}
		if valid[i].Depth != valid[j].Depth {
			return valid[i].Depth > valid[j].Depth
		}
		return valid[i].Key < valid[j].Key
	})
	total := len(valid)
	if offset >= total {
		return []TTEntry{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return valid[offset:end], total
}

func (tt *TranspositionTable) Count() int {
	if tt == nil {
		return 0
	}
	count := 0
	for i := range tt.entries {
		if tt.entries[i].Valid {
			count++
		}
	}
	return count
}

func (tt *TranspositionTable) Capacity() int {
	if tt == nil {
		return 0
	}
	return len(tt.entries)
}

func replacementClass(entry TTEntry, depth int, gen uint32) int {
	if depth > entry.Depth {
		return 1
	}
	if gen-entry.GenWritten >= ttStaleGenerations {
		return 2
	}
	return 0
}

func (f TTFlag) String() string {
	switch f {
	case TTExact:
		return "EXACT"
	case TTLower:
		return "LOWER"
	case TTUpper:
		return "UPPER"
	default:
		return "UNKNOWN"
	}
}

func nextPowerOfTwo(v uint64) uint64 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}
