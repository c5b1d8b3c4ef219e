package assets

import (
	"reflect"
	"strings"

	"github.com/petar/GoLLRB/llrb"
	"github.com/xiaonanln/typeconv"
)

// Kind is the category of an asset
type Kind uint8

const (
	// KindTexture is an image
	KindTexture Kind = iota + 1
	// KindSound is an audio clip
	KindSound
	// KindTable is a data table
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindSound:
		return "sound"
	case KindTable:
		return "table"
	}
	return "unknown"
}

// Texture describes an image asset
type Texture struct {
	Name   string
	Width  int
	Height int
	Format string
	Size   int64
}

// Sound describes an audio asset
type Sound struct {
	Name   string
	Format string
	Size   int64
}

// Table is a decoded data table
type Table map[string]interface{}

var (
	float64Type = reflect.TypeOf(float64(0))
	stringType  = reflect.TypeOf("")
	boolType    = reflect.TypeOf(false)
)

// Int returns the value of key as an integer
func (t Table) Int(key string) int64 {
	return typeconv.Int(t[key])
}

// Float returns the value of key as a float
func (t Table) Float(key string) float64 {
	return typeconv.Convert(t[key], float64Type).Float()
}

// String returns the value of key as a string
func (t Table) String(key string) string {
	return typeconv.Convert(t[key], stringType).String()
}

// Bool returns the value of key as a bool
func (t Table) Bool(key string) bool {
	return typeconv.Convert(t[key], boolType).Bool()
}

type catalogItem struct {
	name string
	kind Kind
}

func (item catalogItem) Less(than llrb.Item) bool {
	return item.name < than.(catalogItem).name
}

// ResourceSet is an immutable collection of loaded assets. A frame uses exactly one set.
type ResourceSet struct {
	Version  uint64
	Textures map[string]Texture
	Sounds   map[string]Sound
	Tables   map[string]Table

	catalog *llrb.LLRB
}

// NewResourceSet creates an empty set
func NewResourceSet(version uint64) *ResourceSet {
	return &ResourceSet{
		Version:  version,
		Textures: map[string]Texture{},
		Sounds:   map[string]Sound{},
		Tables:   map[string]Table{},
		catalog:  llrb.New(),
	}
}

// AddTexture adds a texture; only loaders call it before the set is published
func (rs *ResourceSet) AddTexture(tex Texture) {
	rs.remove(tex.Name)
	rs.Textures[tex.Name] = tex
	rs.catalog.ReplaceOrInsert(catalogItem{tex.Name, KindTexture})
}

// AddSound adds a sound; only loaders call it before the set is published
func (rs *ResourceSet) AddSound(snd Sound) {
	rs.remove(snd.Name)
	rs.Sounds[snd.Name] = snd
	rs.catalog.ReplaceOrInsert(catalogItem{snd.Name, KindSound})
}

// AddTable adds a data table; only loaders call it before the set is published
func (rs *ResourceSet) AddTable(name string, table Table) {
	rs.remove(name)
	rs.Tables[name] = table
	rs.catalog.ReplaceOrInsert(catalogItem{name, KindTable})
}

func (rs *ResourceSet) remove(name string) {
	delete(rs.Textures, name)
	delete(rs.Sounds, name)
	delete(rs.Tables, name)
}

// Len returns the number of assets
func (rs *ResourceSet) Len() int {
	return rs.catalog.Len()
}

// Kind returns the kind of the named asset
func (rs *ResourceSet) Kind(name string) (Kind, bool) {
	item := rs.catalog.Get(catalogItem{name: name})
	if item == nil {
		return 0, false
	}
	return item.(catalogItem).kind, true
}

// Names returns all asset names in lexical order
func (rs *ResourceSet) Names() []string {
	return rs.NamesWithPrefix("")
}

// NamesWithPrefix returns asset names starting with prefix in lexical order
func (rs *ResourceSet) NamesWithPrefix(prefix string) []string {
	var names []string
	rs.catalog.AscendGreaterOrEqual(catalogItem{name: prefix}, func(i llrb.Item) bool {
		name := i.(catalogItem).name
		if !strings.HasPrefix(name, prefix) {
			return false
		}
		names = append(names, name)
		return true
	})
	return names
}
