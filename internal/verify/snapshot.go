package verify

import (
	"compress/gzip"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/steadling/farmcore/internal/content"
)

// Snapshots let deploys skip the parse+verify pass: the binary form is
// what servers load at boot, the json form is for other tooling and
// humans poking around.

// WriteJSON dumps cfg as indented json.
func WriteJSON(w io.Writer, cfg *content.Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config json: %w", err)
	}
	return nil
}

// WriteBinary dumps cfg gob-encoded and gzipped.
func WriteBinary(w io.Writer, cfg *content.Config) error {
	zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(zw).Encode(cfg); err != nil {
		zw.Close()
		return fmt.Errorf("encode config snapshot: %w", err)
	}
	return zw.Close()
}

// ReadBinary loads a WriteBinary snapshot.
func ReadBinary(r io.Reader) (*content.Config, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open config snapshot: %w", err)
	}
	defer zr.Close()
	var cfg content.Config
	if err := gob.NewDecoder(zr).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config snapshot: %w", err)
	}
	return &cfg, nil
}

// ReadBinaryFile is ReadBinary against a path.
func ReadBinaryFile(path string) (*content.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBinary(f)
}

// WriteSnapshots verifies nothing; it just serializes an
// already-verified config to dir/config.json and dir/config.gob.gz.
func WriteSnapshots(dir string, cfg *content.Config) error {
	jf, err := os.Create(dir + "/config.json")
	if err != nil {
		return err
	}
	defer jf.Close()
	if err := WriteJSON(jf, cfg); err != nil {
		return err
	}

	bf, err := os.Create(dir + "/config.gob.gz")
	if err != nil {
		return err
	}
	defer bf.Close()
	return WriteBinary(bf, cfg)
}
