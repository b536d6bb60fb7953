// Package ament finds installed ROS 2 packages through the ament resource
// index, the way `ros2 pkg prefix` does.
package ament

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// PrefixPathEnv lists install prefixes separated by os.PathListSeparator.
const PrefixPathEnv = "AMENT_PREFIX_PATH"

var ErrPackageNotFound = errors.New("package not found in ament index")

// Index searches install prefixes in order; the first match wins.
type Index struct {
	prefixes []string
}

func New(prefixes ...string) *Index {
	var ps []string
	for _, p := range prefixes {
		if p = strings.TrimSpace(p); p != "" {
			ps = append(ps, p)
		}
	}
	return &Index{prefixes: ps}
}

// FromEnv builds an Index from AMENT_PREFIX_PATH, followed by any extra
// prefixes.
func FromEnv(extra ...string) *Index {
	return New(append(filepath.SplitList(os.Getenv(PrefixPathEnv)), extra...)...)
}

func (i *Index) Prefixes() []string {
	return append([]string(nil), i.prefixes...)
}

// PackagePrefix returns the install prefix that registers name.
func (i *Index) PackagePrefix(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", errors.Errorf("invalid package name %q", name)
	}
	for _, prefix := range i.prefixes {
		marker := filepath.Join(prefix, "share", "ament_index", "resource_index", "packages", name)
		if info, err := os.Stat(marker); err == nil && !info.IsDir() {
			return prefix, nil
		}
	}
	return "", errors.Wrapf(ErrPackageNotFound, "%q (searched %d prefixes)", name, len(i.prefixes))
}

// PackageShare returns <prefix>/share/<name>.
func (i *Index) PackageShare(name string) (string, error) {
	prefix, err := i.PackagePrefix(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(prefix, "share", name), nil
}

// Register writes the resource index marker for name under prefix, making
// it discoverable. Used for workspace overlays and tests.
func Register(prefix, name string) error {
	dir := filepath.Join(prefix, "share", "ament_index", "resource_index", "packages")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating resource index")
	}
	if err := os.MkdirAll(filepath.Join(prefix, "share", name), 0o755); err != nil {
		return errors.Wrapf(err, "creating share directory for %q", name)
	}
	return errors.Wrapf(os.WriteFile(filepath.Join(dir, name), nil, 0o644), "registering %q", name)
}
