package anim

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
)

// SupportedVersion is the only document format version this runtime decodes.
const SupportedVersion = 1

// ParseDocument decodes the XML content of an animation document.
//
// Parameters:
//   - data: Raw document bytes, e.g. the content of "assets/scene/forest.anim"
//
// Returns:
//   - *DocumentXML: The decoded document tree
//   - error: Parsing error, or nil if successful
//
// Only the XML syntax and the format version are checked here. Structural
// validation (unique names, known shapes, state targets) happens when the
// document is loaded into a Runtime.
func ParseDocument(data []byte) (*DocumentXML, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty animation document")
	}

	var doc DocumentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	if doc.Version != SupportedVersion {
		return nil, fmt.Errorf("unsupported document version %d (want %d)", doc.Version, SupportedVersion)
	}

	return &doc, nil
}

// ParseDocumentFile reads and decodes an animation document from disk.
//
// Example:
//
//	doc, err := ParseDocumentFile("assets/scene/walk_cycles.anim")
//	if err != nil {
//	    log.Fatalf("Failed to parse document: %v", err)
//	}
//	fmt.Printf("Artboards: %d\n", len(doc.Artboards))
func ParseDocumentFile(path string) (*DocumentXML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read animation document '%s': %w", path, err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode '%s': %w", path, err)
	}
	return doc, nil
}
