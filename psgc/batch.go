package psgc

import "sort"

// Batch holds one import batch's entities grouped by level and keyed
// by code
type Batch struct {
	Regions        map[string]*Entity
	Provinces      map[string]*Entity
	Cities         map[string]*Entity
	Municipalities map[string]*Entity
	Barangays      map[string]*Entity
}

// NewBatch returns an empty batch
func NewBatch() *Batch {
	return &Batch{
		Regions:        make(map[string]*Entity),
		Provinces:      make(map[string]*Entity),
		Cities:         make(map[string]*Entity),
		Municipalities: make(map[string]*Entity),
		Barangays:      make(map[string]*Entity),
	}
}

func (b *Batch) levelMap(level Level) map[string]*Entity {
	switch level {
	case LevelRegion:
		return b.Regions
	case LevelProvince:
		return b.Provinces
	case LevelCity:
		return b.Cities
	case LevelMunicipality:
		return b.Municipalities
	case LevelBarangay:
		return b.Barangays
	}
	return nil
}

// Add stores the entity under its code, replacing any previous holder
// of that code at any level (a duplicate city can arrive re-classified
// as a municipality). Reports whether a replacement happened.
func (b *Batch) Add(e *Entity) bool {
	_, replaced := b.Remove(e.Code)
	b.levelMap(e.Level)[e.Code] = e
	return replaced
}

// Get looks the code up across all level maps
func (b *Batch) Get(code string) (*Entity, bool) {
	for _, m := range b.maps() {
		if e, ok := m[code]; ok {
			return e, true
		}
	}
	return nil, false
}

// Remove deletes the code from whichever level map holds it
func (b *Batch) Remove(code string) (*Entity, bool) {
	for _, m := range b.maps() {
		if e, ok := m[code]; ok {
			delete(m, code)
			return e, true
		}
	}
	return nil, false
}

// Counts returns the per-level entity counts
func (b *Batch) Counts() map[Level]int {
	return map[Level]int{
		LevelRegion:       len(b.Regions),
		LevelProvince:     len(b.Provinces),
		LevelCity:         len(b.Cities),
		LevelMunicipality: len(b.Municipalities),
		LevelBarangay:     len(b.Barangays),
	}
}

// Len returns the total number of entities
func (b *Batch) Len() int {
	n := 0
	for _, m := range b.maps() {
		n += len(m)
	}
	return n
}

// Ordered returns the entities in dependency order (regions first,
// barangays last), code-sorted within each level, so writes satisfy
// the store's foreign keys.
func (b *Batch) Ordered() []*Entity {
	out := make([]*Entity, 0, b.Len())
	for _, m := range b.maps() {
		codes := make([]string, 0, len(m))
		for code := range m {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			out = append(out, m[code])
		}
	}
	return out
}

// maps returns the level maps in dependency order
func (b *Batch) maps() []map[string]*Entity {
	return []map[string]*Entity{b.Regions, b.Provinces, b.Cities, b.Municipalities, b.Barangays}
}
