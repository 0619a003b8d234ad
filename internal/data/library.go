package data

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultLibrary []byte

// ServerEntry is the single character server the offline backend lists.
type ServerEntry struct {
	Name      string `yaml:"name"`
	UserCount uint16 `yaml:"user_count"`
}

// Spawn is where new characters and respawns are placed.
type Spawn struct {
	Map string `yaml:"map"`
	X   uint16 `yaml:"x"`
	Y   uint16 `yaml:"y"`
}

// StarterItem is granted to a character the first time it enters the map.
type StarterItem struct {
	ItemID uint32 `yaml:"item_id"`
	Amount uint16 `yaml:"amount"`
}

// CharacterDefaults holds the values a freshly created character starts with.
type CharacterDefaults struct {
	NormalSlots int           `yaml:"normal_slots"`
	Zeny        int32         `yaml:"zeny"`
	Stats       uint8         `yaml:"stats"`
	HP          int64         `yaml:"hp"`
	SP          int64         `yaml:"sp"`
	Spawn       Spawn         `yaml:"spawn"`
	Items       []StarterItem `yaml:"items"`
}

// Library is the static content the offline backend serves.
type Library struct {
	Server    ServerEntry
	Character CharacterDefaults
	Items     *ItemTable
	Shops     *ShopTable
	Maps      *MapTable
}

type libraryFile struct {
	Server    ServerEntry       `yaml:"server"`
	Character CharacterDefaults `yaml:"character"`
	Items     []Item            `yaml:"items"`
	Shops     []shopYAMLEntry   `yaml:"shops"`
	Maps      []MapInfo         `yaml:"maps"`
}

// Default returns the embedded library.
func Default() (*Library, error) {
	return Parse(defaultLibrary)
}

// Load reads a library file. An empty path selects the embedded default.
func Load(path string) (*Library, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a library document and validates cross references.
func Parse(raw []byte) (*Library, error) {
	var f libraryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse library: %w", err)
	}

	lib := &Library{
		Server:    f.Server,
		Character: f.Character,
		Items:     newItemTable(f.Items),
		Shops:     newShopTable(f.Shops),
		Maps:      newMapTable(f.Maps),
	}
	if lib.Character.NormalSlots <= 0 {
		lib.Character.NormalSlots = 9
	}
	if lib.Character.Stats == 0 {
		lib.Character.Stats = 5
	}

	if lib.Maps.Get(lib.Character.Spawn.Map) == nil {
		return nil, fmt.Errorf("spawn map %q is not in the map list", lib.Character.Spawn.Map)
	}
	for _, it := range lib.Character.Items {
		if lib.Items.Get(it.ItemID) == nil {
			return nil, fmt.Errorf("starter item %d is not in the item list", it.ItemID)
		}
	}
	for _, shop := range lib.Shops.shops {
		for _, it := range shop.SellingItems {
			if lib.Items.Get(it.ItemID) == nil {
				return nil, fmt.Errorf("shop %d sells unknown item %d", shop.NpcID, it.ItemID)
			}
		}
	}
	return lib, nil
}
