// Package fsutil writes generated artifacts so that readers never observe a
// half-written file or step directory.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WriteFile writes data to path atomically: it writes a temporary file in
// the same directory, fsyncs it, and renames it over the target. Parent
// directories are created as needed.
func WriteFile(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Chmod(perm); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}

// ReplaceDir makes dir hold exactly files (name to content) plus whatever
// non-markdown entries it already had. The new contents are built in a
// temporary sibling directory and swapped in with renames, so a failure
// while writing leaves the previous directory untouched.
// It returns the paths written, sorted by name.
func ReplaceDir(dir string, files map[string][]byte) ([]string, error) {
	parent, base := filepath.Split(filepath.Clean(dir))
	if parent == "" {
		parent = "."
	}
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, err
	}
	staging, err := os.MkdirTemp(parent, "."+base+"-new-")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := WriteFile(filepath.Join(staging, name), files[name], 0644); err != nil {
			os.RemoveAll(staging)
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
	}
	if err := os.Chmod(staging, 0755); err != nil {
		os.RemoveAll(staging)
		return nil, err
	}

	backup := ""
	if _, err := os.Stat(dir); err == nil {
		backup = filepath.Join(parent, "."+base+"-old")
		os.RemoveAll(backup)
		if err := os.Rename(dir, backup); err != nil {
			os.RemoveAll(staging)
			return nil, fmt.Errorf("moving aside %s: %w", dir, err)
		}
	}
	if err := os.Rename(staging, dir); err != nil {
		if backup != "" {
			os.Rename(backup, dir)
		}
		os.RemoveAll(staging)
		return nil, fmt.Errorf("installing %s: %w", dir, err)
	}

	if backup != "" {
		if err := carryOver(backup, dir, files); err != nil {
			return nil, err
		}
		os.RemoveAll(backup)
	}

	written := make([]string, len(names))
	for i, name := range names {
		written[i] = filepath.Join(dir, name)
	}
	return written, nil
}

// carryOver moves entries that are not generated markdown from the old
// directory into the new one.
func carryOver(from, to string, files map[string][]byte) error {
	entries, err := os.ReadDir(from)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, generated := files[e.Name()]; generated {
			continue
		}
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		if err := os.Rename(filepath.Join(from, e.Name()), filepath.Join(to, e.Name())); err != nil {
			return fmt.Errorf("keeping %s: %w", e.Name(), err)
		}
	}
	return nil
}
