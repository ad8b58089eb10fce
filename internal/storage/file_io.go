package storage

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"yogaday/local-app/internal/model"
)

// Format is an export file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrChecksumMismatch is returned when an export's checksum does not match its content
var ErrChecksumMismatch = errors.New("checksum mismatch")

// ParseFormat converts a format name, defaulting to JSON when empty
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// FormatFromPath picks the format from the file extension, JSON otherwise
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DocumentChecksum returns the hex BLAKE2b-256 digest of the normalized
// document encoded as JSON with an empty checksum field.
func DocumentChecksum(doc model.ExportDocument) (string, error) {
	doc = NormalizeDocument(doc)
	doc.Checksum = ""
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// VerifyChecksum checks the document against its checksum, if it carries one
func VerifyChecksum(doc model.ExportDocument) error {
	if doc.Checksum == "" {
		return nil
	}
	sum, err := DocumentChecksum(doc)
	if err != nil {
		return err
	}
	if !strings.EqualFold(sum, doc.Checksum) {
		return ErrChecksumMismatch
	}
	return nil
}

// EncodeDocument serializes a document, stamping its checksum
func EncodeDocument(doc model.ExportDocument, format Format) ([]byte, error) {
	doc = NormalizeDocument(doc)
	sum, err := DocumentChecksum(doc)
	if err != nil {
		return nil, err
	}
	doc.Checksum = sum

	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return data, nil
	}
}

// DecodeDocument parses a document. Missing collections decode as empty and
// numeric-string identifiers are accepted.
func DecodeDocument(data []byte, format Format) (model.ExportDocument, error) {
	var rec documentRecord
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return model.ExportDocument{}, fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &rec); err != nil {
			return model.ExportDocument{}, fmt.Errorf("failed to decode json: %w", err)
		}
	}
	return NormalizeDocument(rec.toModel()), nil
}

// FileExport writes the document to a file
func FileExport(path string, doc model.ExportDocument, format Format) error {
	data, err := EncodeDocument(doc, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// FileImport reads a document from a file
func FileImport(path string, format Format) (model.ExportDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ExportDocument{}, fmt.Errorf("failed to read import file: %w", err)
	}
	return DecodeDocument(data, format)
}
