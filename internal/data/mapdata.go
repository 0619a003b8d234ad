package data

import "strings"

// MapInfo holds metadata for a single map.
type MapInfo struct {
	Name   string `yaml:"name"`
	Width  uint16 `yaml:"width"`
	Height uint16 `yaml:"height"`
}

// Contains reports whether the tile lies inside the map.
func (m *MapInfo) Contains(x, y uint16) bool {
	return x < m.Width && y < m.Height
}

// MapTable provides map metadata lookups by name.
type MapTable struct {
	maps map[string]*MapInfo
}

func newMapTable(list []MapInfo) *MapTable {
	t := &MapTable{maps: make(map[string]*MapInfo, len(list))}
	for i := range list {
		t.maps[normalizeMapName(list[i].Name)] = &list[i]
	}
	return t
}

// Get returns a map by name, with or without the ".gat" suffix.
func (t *MapTable) Get(name string) *MapInfo {
	return t.maps[normalizeMapName(name)]
}

func (t *MapTable) Count() int {
	return len(t.maps)
}

func normalizeMapName(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, ".gat"))
}
