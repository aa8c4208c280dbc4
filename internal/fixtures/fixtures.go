// Package fixtures loads SVD test documents from txtar archives, so a
// whole corpus of device descriptions lives in one reviewable file per
// package.
package fixtures

import (
	"testing"

	"golang.org/x/tools/txtar"
)

// Load parses the txtar archive at path into a name to contents map.
func Load(t *testing.T, path string) map[string][]byte {
	t.Helper()
	archive, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("loading fixture archive %s: %v", path, err)
	}
	docs := make(map[string][]byte, len(archive.Files))
	for _, f := range archive.Files {
		docs[f.Name] = f.Data
	}
	return docs
}

// Document returns one named document from the archive at path,
// failing the test when it is absent.
func Document(t *testing.T, path, name string) []byte {
	t.Helper()
	docs := Load(t, path)
	data, ok := docs[name]
	if !ok {
		t.Fatalf("fixture archive %s has no document %q", path, name)
	}
	return data
}
