package importer

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"

	"github.com/SnakeyRoad/jdm-doctor-dashboard/internal/pipeline"
)

// ErrChecksum reports a cleaned file that differs from its manifest entry.
var ErrChecksum = errors.New("checksum mismatch")

func isNotExist(err error) bool { return errors.Is(err, os.ErrNotExist) }

// verifyManifest checks every successfully cleaned file listed in the
// manifest against its recorded xxh3 checksum. No manifest is not an error.
func (im *Importer) verifyManifest() error {
	if im.opts.Manifest == "" {
		return nil
	}
	path := filepath.Join(im.opts.Dir, im.opts.Manifest)
	b, err := os.ReadFile(path)
	if err != nil {
		if isNotExist(err) {
			log.Printf("importer: manifest=%s not found, checksums not verified", path)
			return nil
		}
		return fmt.Errorf("read manifest: %w", err)
	}
	rep, err := pipeline.ReadManifest(b)
	if err != nil {
		return err
	}

	var checked int
	for _, res := range rep.Results {
		if res.Outcome != pipeline.OutcomeSuccess || res.Checksum == "" {
			continue
		}
		// The manifest may have been produced in another working directory;
		// only the base name is trusted.
		name := filepath.Join(im.opts.Dir, filepath.Base(res.Output))
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("verify %s: %w", res.Table, err)
		}
		if got := fmt.Sprintf("%016x", xxh3.Hash(data)); got != res.Checksum {
			return fmt.Errorf("verify %s: %w (manifest %s, file %s)", res.Table, ErrChecksum, res.Checksum, got)
		}
		checked++
	}
	log.Printf("importer: manifest=%s verified=%d job=%s", path, checked, rep.Job)
	return nil
}
