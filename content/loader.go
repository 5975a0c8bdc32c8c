package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// DecodeDocument parses an authored document. Unknown fields are rejected;
// a typo in a table must fail before any battle runs against it.
func DecodeDocument(data []byte) (Document, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("content: decode document: %w", err)
	}
	return doc, nil
}

// LoadCatalog reads, decodes and compiles a document file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", path, err)
	}
	catalog, err := Compile(doc)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", path, err)
	}
	return catalog, nil
}
