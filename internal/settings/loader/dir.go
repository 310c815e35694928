package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/notebar/internal/settings"
)

const (
	schemaExt = ".json"
	userExt   = ".user.json"
)

// DirConnector serves settings plugins from a directory of JSON files.
type DirConnector struct {
	fs  FileSystem
	dir string
}

var _ settings.Connector = (*DirConnector)(nil)

// NewDirConnector creates a connector for the given directory.
func NewDirConnector(dir string) *DirConnector {
	return &DirConnector{fs: DefaultFS(), dir: dir}
}

// NewDirConnectorWithFS creates a connector with a custom file system.
func NewDirConnectorWithFS(fsys FileSystem, dir string) *DirConnector {
	return &DirConnector{fs: fsys, dir: dir}
}

// Fetch reads a plugin's schema and user overrides. A missing user
// file is not an error; a missing schema file is.
func (c *DirConnector) Fetch(pluginID string) (*settings.PluginData, error) {
	schema, err := c.fs.ReadFile(c.schemaPath(pluginID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, settings.ErrPluginNotFound
		}
		return nil, fmt.Errorf("reading schema for %s: %w", pluginID, err)
	}

	user, err := c.fs.ReadFile(c.userPath(pluginID))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading user settings for %s: %w", pluginID, err)
		}
		user = nil
	}

	version := gjson.GetBytes(schema, "version").String()
	if version == "" {
		version = "1.0.0"
	}

	return &settings.PluginData{Schema: schema, User: user, Version: version}, nil
}

// IDs lists the plugin ids available in the directory, sorted.
func (c *DirConnector) IDs() ([]string, error) {
	matches, err := c.fs.Glob(filepath.Join(c.dir, "*"+schemaExt))
	if err != nil {
		return nil, fmt.Errorf("listing plugins in %s: %w", c.dir, err)
	}

	var ids []string
	for _, m := range matches {
		base := filepath.Base(m)
		if strings.HasSuffix(base, userExt) {
			continue
		}
		ids = append(ids, FileToID(strings.TrimSuffix(base, schemaExt)))
	}
	sort.Strings(ids)
	return ids, nil
}

func (c *DirConnector) schemaPath(id string) string {
	return filepath.Join(c.dir, IDToFile(id)+schemaExt)
}

func (c *DirConnector) userPath(id string) string {
	return filepath.Join(c.dir, IDToFile(id)+userExt)
}

// IDToFile converts a plugin id to its on-disk file stem.
func IDToFile(id string) string {
	return strings.ReplaceAll(id, ":", "__")
}

// FileToID converts an on-disk file stem back to a plugin id.
func FileToID(stem string) string {
	return strings.Replace(stem, "__", ":", 1)
}
