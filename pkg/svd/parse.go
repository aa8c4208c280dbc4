package svd

import (
	"fmt"
	"os"

	"github.com/svdkit/svd-go/pkg/model"
	"github.com/svdkit/svd-go/pkg/schema"
)

// Parse resolves an SVD document into an immutable device model.
//
// The document passes through the full pipeline: decode, build,
// derivation, property finalization, array expansion, alternate
// linking, address calculation, and optional bit-band generation.
// The first error aborts the parse; on success the returned device is
// frozen and safe for concurrent readers.
func Parse(data []byte, cfg Config) (*model.Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.logger()

	doc, err := schema.Decode(data)
	if err != nil {
		return nil, err
	}

	t, err := buildTree(doc, log)
	if err != nil {
		return nil, err
	}
	if err := resolveDerived(t, log); err != nil {
		return nil, err
	}
	if err := finalizeProperties(t); err != nil {
		return nil, err
	}
	if err := expandArrays(t, log); err != nil {
		return nil, err
	}
	if err := resolveAlternates(t, log); err != nil {
		return nil, err
	}
	if err := calculateAddresses(t, log); err != nil {
		return nil, err
	}
	if cfg.EnableBitBand {
		generateBitBand(t, &cfg, log)
	}

	return assemble(t)
}

// ParseFile reads and parses an SVD document from a file.
func ParseFile(path string, cfg Config) (*model.Device, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading SVD document %s: %w", path, err)
	}
	return Parse(data, cfg)
}
