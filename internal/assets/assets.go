// Package assets persists uploaded photos and hands back the relative URLs
// their owning records store.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Namespaces partition the upload directory: finder photos and claimer
// photos never share a directory.
const (
	NamespaceSubmitted = "submitted"
	NamespaceClaimed   = "claimed"
)

// Binder writes photo binaries under a root directory and returns stable
// references of the form /uploads/<namespace>/<name>. Generated names
// combine a millisecond timestamp with a random UUID, so concurrent binds
// cannot collide regardless of clock resolution. Claimer assets carry a
// distinct role marker in the name.
type Binder struct {
	root string
}

// NewBinder creates the upload directories under root.
func NewBinder(root string) (*Binder, error) {
	for _, ns := range []string{NamespaceSubmitted, NamespaceClaimed} {
		if err := os.MkdirAll(filepath.Join(root, ns), 0o755); err != nil {
			return nil, fmt.Errorf("creating upload dir: %w", err)
		}
	}
	return &Binder{root: root}, nil
}

// Bind durably writes raw under namespace and returns the asset reference.
// A nil or empty payload yields an empty reference; a reference is only
// returned once the bytes are confirmed on disk.
func (b *Binder) Bind(namespace string, raw []byte, originalName string) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	name := assetName(namespace, originalName)
	dst := filepath.Join(b.root, namespace, name)

	tmp, err := os.CreateTemp(filepath.Join(b.root, namespace), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("binding asset: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return "", fmt.Errorf("binding asset: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("binding asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("binding asset: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("binding asset: %w", err)
	}
	return "/uploads/" + namespace + "/" + name, nil
}

// Root returns the directory assets are stored under, for static serving.
func (b *Binder) Root() string {
	return b.root
}

func assetName(namespace, originalName string) string {
	base := filepath.Base(originalName)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "photo"
	}
	stamp := time.Now().UnixMilli()
	token := uuid.NewString()
	if namespace == NamespaceClaimed {
		return fmt.Sprintf("%d-claimer-%s-%s", stamp, token, base)
	}
	return fmt.Sprintf("%d-%s-%s", stamp, token, base)
}
