package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// localDisk stores media on the local filesystem. It is the default driver
// so the server runs without any cloud credentials.
type localDisk struct {
	root string
}

func newLocalDisk(root string) (*localDisk, error) {
	if root == "" {
		root = "media"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage/local: mkdir %s: %w", root, err)
	}
	return &localDisk{root: root}, nil
}

// fullPath resolves a key under the root, rejecting traversal outside it.
func (d *localDisk) fullPath(key string) (string, error) {
	p := filepath.Join(d.root, filepath.FromSlash(key))
	if !strings.HasPrefix(p, filepath.Clean(d.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage/local: invalid key %q", key)
	}
	return p, nil
}

func (d *localDisk) Put(key string, r io.Reader) error {
	p, err := d.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir for %s: %w", key, err)
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", key, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", key, err)
	}
	return nil
}

func (d *localDisk) Get(key string) (io.ReadCloser, error) {
	p, err := d.fullPath(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("storage/local: open %s: %w", key, err)
	}
	return f, nil
}

func (d *localDisk) Delete(key string) error {
	p, err := d.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", key, err)
	}
	return nil
}

// URL returns the path the HTTP server serves the media root under.
func (d *localDisk) URL(key string) string {
	return "/media/" + strings.TrimLeft(key, "/")
}

// Root exposes the media root for static file serving.
func (d *localDisk) Root() string { return d.root }
