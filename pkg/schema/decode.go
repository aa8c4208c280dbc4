package schema

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/text/encoding/ianaindex"
)

// Decode parses SVD document bytes into the raw document model.
// Documents in any IANA-registered charset are accepted; the charset is
// taken from the XML declaration.
func Decode(data []byte) (*Device, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	var doc Device
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding SVD document: %w", err)
	}
	return &doc, nil
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported document charset %q", charset)
	}
	if enc == nil {
		// Registered name without a converter (such as US-ASCII);
		// already valid UTF-8.
		return input, nil
	}
	return enc.NewDecoder().Reader(input), nil
}
