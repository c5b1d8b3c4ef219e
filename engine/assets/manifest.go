package assets

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
)

// ManifestEntry describes one asset of a loaded set
type ManifestEntry struct {
	Name string `msgpack:"n"`
	Kind Kind   `msgpack:"k"`
	Size int64  `msgpack:"s"`
}

// Manifest lists the assets of one resource set
type Manifest struct {
	Version uint64          `msgpack:"v"`
	Entries []ManifestEntry `msgpack:"e"`
}

// BuildManifest lists set in name order
func BuildManifest(set *ResourceSet) *Manifest {
	m := &Manifest{Version: set.Version}
	for _, name := range set.Names() {
		entry := ManifestEntry{Name: name}
		entry.Kind, _ = set.Kind(name)
		switch entry.Kind {
		case KindTexture:
			entry.Size = set.Textures[name].Size
		case KindSound:
			entry.Size = set.Sounds[name].Size
		}
		m.Entries = append(m.Entries, entry)
	}
	return m
}

// WriteManifest stores the manifest of set at path
func WriteManifest(path string, set *ResourceSet) error {
	data, err := msgpack.Marshal(BuildManifest(set))
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadManifest loads a manifest written by WriteManifest
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "decode manifest %s", path)
	}
	return &m, nil
}
