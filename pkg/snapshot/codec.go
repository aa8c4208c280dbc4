package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder mode for snapshots. Configured for
// deterministic output so identical devices encode to identical bytes.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for snapshots.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// EncodeCBOR encodes a snapshot to deterministic CBOR bytes.
func EncodeCBOR(d *Device) ([]byte, error) {
	return encMode.Marshal(d)
}

// DecodeCBOR decodes CBOR bytes into a snapshot.
func DecodeCBOR(data []byte) (*Device, error) {
	var d Device
	if err := decMode.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &d, nil
}

// EncodeJSON encodes a snapshot to indented JSON.
func EncodeJSON(d *Device) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
