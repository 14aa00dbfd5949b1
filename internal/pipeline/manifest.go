package pipeline

import (
	"encoding/json"
	"fmt"
)

// writeManifest stores rep as indented JSON at path. The manifest goes
// through the same atomic sink as the tables.
func (p *Pipeline) writeManifest(path string, rep Report) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	sink, err := p.createSink(path)
	if err != nil {
		return err
	}
	defer sink.Abort()

	if _, err := sink.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return sink.Commit()
}

// ReadManifest decodes a manifest written by Run.
func ReadManifest(b []byte) (Report, error) {
	var rep Report
	if err := json.Unmarshal(b, &rep); err != nil {
		return rep, fmt.Errorf("decode manifest: %w", err)
	}
	return rep, nil
}
