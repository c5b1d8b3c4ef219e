package assets

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/lunabridge/lunabridge/engine/consts"
	"github.com/lunabridge/lunabridge/engine/lblog"
	"github.com/lunabridge/lunabridge/engine/lifecycle"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
)

// LoadRequest carries what a loader needs to build one resource set
type LoadRequest struct {
	Params  lifecycle.InitParams
	Version uint64
}

// Loader builds a fresh resource set. Load runs outside the engine lock and must not
// touch the active set.
type Loader interface {
	Load(req LoadRequest) (*ResourceSet, error)
}

// LoaderFunc adapts a func to Loader
type LoaderFunc func(req LoadRequest) (*ResourceSet, error)

// Load calls f
func (f LoaderFunc) Load(req LoadRequest) (*ResourceSet, error) {
	return f(req)
}

// FileSystemLoader loads assets from the apk archive (or directory) and the app folder.
// Files in the app folder override apk entries with the same name.
type FileSystemLoader struct {
	Dir       string // asset directory relative to AppFolderPath
	ApkPrefix string // asset prefix inside the apk
	Manifest  string // manifest file name in CachePath, empty to disable
}

// NewFileSystemLoader creates a loader with default locations
func NewFileSystemLoader() *FileSystemLoader {
	return &FileSystemLoader{
		Dir:       consts.ASSETS_DIR,
		ApkPrefix: consts.APK_ASSETS_PREFIX,
		Manifest:  consts.ASSETS_MANIFEST_FILE,
	}
}

// Load scans all asset roots and decodes every recognized file
func (l *FileSystemLoader) Load(req LoadRequest) (*ResourceSet, error) {
	set := NewResourceSet(req.Version)

	if req.Params.ApkPath != "" {
		if err := l.loadApk(set, req.Params.ApkPath); err != nil {
			return nil, err
		}
	}
	if req.Params.AppFolderPath != "" {
		dir := filepath.Join(req.Params.AppFolderPath, l.Dir)
		if err := l.loadDir(set, dir); err != nil {
			return nil, err
		}
	}

	if l.Manifest != "" && req.Params.CachePath != "" {
		manifestPath := filepath.Join(req.Params.CachePath, l.Manifest)
		if err := WriteManifest(manifestPath, set); err != nil {
			lblog.Warnf("Write asset manifest %s failed: %v", manifestPath, err)
		}
	}
	lblog.Infof("Loaded resource set v%d: %d textures, %d sounds, %d tables",
		set.Version, len(set.Textures), len(set.Sounds), len(set.Tables))
	return set, nil
}

func (l *FileSystemLoader) loadApk(set *ResourceSet, apkPath string) error {
	st, err := os.Stat(apkPath)
	if err != nil {
		return errors.Wrapf(err, "stat apk %s", apkPath)
	}
	if st.IsDir() {
		return l.loadDir(set, filepath.Join(apkPath, filepath.FromSlash(l.ApkPrefix)))
	}

	zr, err := zip.OpenReader(apkPath)
	if err != nil {
		return errors.Wrapf(err, "open apk %s", apkPath)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasPrefix(f.Name, l.ApkPrefix) {
			continue
		}
		name := strings.TrimPrefix(f.Name, l.ApkPrefix)
		if kindOf(name) == 0 {
			continue
		}
		data, err := readZipFile(f)
		if err != nil {
			return errors.Wrapf(err, "read %s from apk", f.Name)
		}
		if err := addAsset(set, name, data); err != nil {
			return err
		}
	}
	return nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (l *FileSystemLoader) loadDir(set *ResourceSet, dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		lblog.Debugf("Asset directory %s does not exist, skipped", dir)
		return nil
	}

	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if kindOf(name) == 0 {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return errors.Wrapf(err, "read asset %s", p)
		}
		return addAsset(set, name, data)
	})
}

func kindOf(name string) Kind {
	switch strings.ToLower(path.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return KindTexture
	case ".wav", ".ogg", ".mp3":
		return KindSound
	case ".json", ".msgpack", ".mp":
		return KindTable
	}
	return 0
}

func addAsset(set *ResourceSet, name string, data []byte) error {
	if consts.DEBUG_ASSETS {
		lblog.Debugf("Loading asset %s (%d bytes)", name, len(data))
	}
	ext := strings.ToLower(path.Ext(name))
	switch kindOf(name) {
	case KindTexture:
		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return errors.Wrapf(errCorruptAsset, "texture %s: %v", name, err)
		}
		set.AddTexture(Texture{
			Name:   name,
			Width:  cfg.Width,
			Height: cfg.Height,
			Format: format,
			Size:   int64(len(data)),
		})
	case KindSound:
		set.AddSound(Sound{
			Name:   name,
			Format: strings.TrimPrefix(ext, "."),
			Size:   int64(len(data)),
		})
	case KindTable:
		table := Table{}
		var err error
		if ext == ".json" {
			err = json.Unmarshal(data, &table)
		} else {
			err = msgpack.Unmarshal(data, &table)
		}
		if err != nil {
			return errors.Wrapf(errCorruptAsset, "table %s: %v", name, err)
		}
		set.AddTable(name, table)
	}
	return nil
}
