// Package export writes pipeline artifacts: per-language JSON and CSV
// files plus a manifest that records a BLAKE3 hash and size for everything
// a run produced. Writes go through a temp file and rename so a crashed run
// never leaves a truncated artifact behind.
package export

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/lexigame/wordmine/core/errors"
	"github.com/lexigame/wordmine/internal/nounfreq"
)

// ManifestFile is one artifact entry in a run manifest.
type ManifestFile struct {
	Name   string `json:"name"`
	BLAKE3 string `json:"blake3"`
	Size   int64  `json:"size"`
}

// Manifest describes one pipeline run and everything it wrote.
type Manifest struct {
	RunID     string         `json:"run_id"`
	Tool      string         `json:"tool"`
	CreatedAt time.Time      `json:"created_at"`
	Files     []ManifestFile `json:"files"`
}

// Writer collects artifacts for one run under a single output directory.
type Writer struct {
	dir   string
	tool  string
	runID string
	files []ManifestFile
}

// NewWriter creates the output directory and assigns the run a fresh ID.
func NewWriter(dir, tool string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewIO("create", dir, err)
	}
	return &Writer{dir: dir, tool: tool, runID: uuid.New().String()}, nil
}

// RunID returns the run's identifier, also recorded in the manifest.
func (w *Writer) RunID() string { return w.runID }

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// WriteJSON marshals v with indentation and stores it under name.
func (w *Writer) WriteJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "marshal %s", name)
	}
	return w.writeFile(name, append(data, '\n'))
}

// WriteCSV stores word frequency entries under name in word,count form.
func (w *Writer) WriteCSV(name string, entries []nounfreq.Entry) error {
	var buf bytes.Buffer
	if err := nounfreq.Write(&buf, entries); err != nil {
		return err
	}
	return w.writeFile(name, buf.Bytes())
}

// WriteLines stores words one per line, for the plain word list outputs.
func (w *Writer) WriteLines(name string, words []string) error {
	var buf []byte
	for _, word := range words {
		buf = append(buf, word...)
		buf = append(buf, '\n')
	}
	return w.writeFile(name, buf)
}

func (w *Writer) writeFile(name string, data []byte) error {
	f, err := os.CreateTemp(w.dir, ".export-*")
	if err != nil {
		return errors.NewIO("create", w.dir, err)
	}
	tempPath := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tempPath)
		return errors.NewIO("write", tempPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return errors.NewIO("close", tempPath, err)
	}
	if err := os.Rename(tempPath, filepath.Join(w.dir, name)); err != nil {
		os.Remove(tempPath)
		return errors.NewIO("rename", tempPath, err)
	}

	w.record(name, data)
	return nil
}

func (w *Writer) record(name string, data []byte) {
	sum := blake3.Sum256(data)
	w.files = append(w.files, ManifestFile{
		Name:   name,
		BLAKE3: hex.EncodeToString(sum[:]),
		Size:   int64(len(data)),
	})
}

// Finalize writes manifest.json listing every artifact the writer stored,
// sorted by name.
func (w *Writer) Finalize() error {
	sort.Slice(w.files, func(i, j int) bool { return w.files[i].Name < w.files[j].Name })
	manifest := Manifest{
		RunID:     w.runID,
		Tool:      w.tool,
		CreatedAt: time.Now().UTC(),
		Files:     w.files,
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}

	path := filepath.Join(w.dir, "manifest.json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}
