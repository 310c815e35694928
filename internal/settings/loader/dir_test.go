package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/notebar/internal/settings"
)

// mapFS is an in-memory FileSystem for tests.
type mapFS map[string][]byte

func (m mapFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[filepath.ToSlash(path)]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m mapFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m[filepath.ToSlash(path)]; !ok {
		return nil, os.ErrNotExist
	}
	return nil, nil
}

func (m mapFS) Glob(pattern string) ([]string, error) {
	var out []string
	for path := range m {
		ok, err := filepath.Match(filepath.ToSlash(pattern), path)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, path)
		}
	}
	return out, nil
}

func TestDirConnector_Fetch(t *testing.T) {
	fsys := mapFS{
		"etc/notebar__notebook.json":      []byte(`{"version": "2.1.0", "jupyter.lab.toolbars": {"Notebook": []}}`),
		"etc/notebar__notebook.user.json": []byte(`{"theme": "light"}`),
	}
	c := NewDirConnectorWithFS(fsys, "etc")

	data, err := c.Fetch("notebar:notebook")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if data.Version != "2.1.0" {
		t.Errorf("Version = %q, want %q", data.Version, "2.1.0")
	}
	if !strings.Contains(string(data.User), "light") {
		t.Errorf("User = %q, missing overrides", data.User)
	}
}

func TestDirConnector_FetchNoUserFile(t *testing.T) {
	fsys := mapFS{
		"etc/foo.json": []byte(`{}`),
	}
	c := NewDirConnectorWithFS(fsys, "etc")

	data, err := c.Fetch("foo")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if data.User != nil {
		t.Errorf("User = %q, want nil", data.User)
	}
	if data.Version != "1.0.0" {
		t.Errorf("Version = %q, want default", data.Version)
	}
}

func TestDirConnector_FetchMissing(t *testing.T) {
	c := NewDirConnectorWithFS(mapFS{}, "etc")
	if _, err := c.Fetch("nope"); !errors.Is(err, settings.ErrPluginNotFound) {
		t.Errorf("error = %v, want ErrPluginNotFound", err)
	}
}

func TestDirConnector_IDs(t *testing.T) {
	fsys := mapFS{
		"etc/notebar__notebook.json":      []byte(`{}`),
		"etc/notebar__notebook.user.json": []byte(`{}`),
		"etc/extra.json":                  []byte(`{}`),
	}
	c := NewDirConnectorWithFS(fsys, "etc")

	ids, err := c.IDs()
	if err != nil {
		t.Fatalf("IDs() error: %v", err)
	}
	want := []string{"extra", "notebar:notebook"}
	if len(ids) != len(want) {
		t.Fatalf("IDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestIDFileRoundTrip(t *testing.T) {
	id := "notebar:notebook"
	if got := FileToID(IDToFile(id)); got != id {
		t.Errorf("round trip = %q, want %q", got, id)
	}
}

func TestDirConnector_OSFS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foo.json")
	if err := os.WriteFile(path, []byte(`{"version":"3.0.0"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewDirConnector(dir)
	data, err := c.Fetch("foo")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if data.Version != "3.0.0" {
		t.Errorf("Version = %q, want %q", data.Version, "3.0.0")
	}
}
