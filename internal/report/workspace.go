// Package report manages an on-disk workspace for generated dashboard
// artifacts (CSV exports, workbooks, chart PNGs) with a yaml manifest
// describing what was produced and when.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/hadiswara/pajak-restoran-dashboard/internal/utils"
)

const manifestFileName = "manifest.yaml"

// Workspace is a directory of generated artifacts persisted on disk.
type Workspace struct {
	Name      string      `yaml:"name"`
	SessionID string      `yaml:"session_id"`
	Source    string      `yaml:"source"`
	Artifacts []*Artifact `yaml:"artifacts"`
	CreatedAt time.Time   `yaml:"created_at"`
	UpdatedAt time.Time   `yaml:"updated_at"`

	// Not serialized: on-disk location of the manifest.
	rootDir string
}

// Artifact describes one generated file.
type Artifact struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Kind      string    `yaml:"kind"` // "csv", "xlsx", "chart"
	Path      string    `yaml:"path"`
	CreatedAt time.Time `yaml:"created_at"`
}

// New constructs an in-memory workspace. Call Save() to persist.
func New(name, sessionID, source, rootDir string) *Workspace {
	return &Workspace{
		Name:      name,
		SessionID: sessionID,
		Source:    source,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		rootDir:   rootDir,
	}
}

// Load reads a manifest.yaml from the provided directory.
func Load(dir string) (*Workspace, error) {
	path := filepath.Join(dir, manifestFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("workspace not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var w Workspace
	if err := yaml.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	w.rootDir = dir
	return &w, nil
}

// RootDir returns the on-disk workspace directory path.
func (w *Workspace) RootDir() string { return w.rootDir }

// Save writes the manifest using an atomic write.
func (w *Workspace) Save() error {
	if w.rootDir == "" {
		return errors.New("workspace root directory not set")
	}
	if err := utils.EnsureDir(w.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	w.UpdatedAt = time.Now()
	data, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return utils.SafeWriteFile(filepath.Join(w.rootDir, manifestFileName), data)
}

// AddArtifact records a generated file in the manifest.
func (w *Workspace) AddArtifact(path, kind string) *Artifact {
	a := &Artifact{
		ID:        uuid.NewString(),
		Name:      filepath.Base(path),
		Kind:      kind,
		Path:      path,
		CreatedAt: time.Now(),
	}
	w.Artifacts = append(w.Artifacts, a)
	w.UpdatedAt = time.Now()
	return a
}

// List returns artifacts ordered by name for stable output.
func (w *Workspace) List() []*Artifact {
	out := append([]*Artifact(nil), w.Artifacts...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
