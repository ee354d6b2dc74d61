// Package fxload decodes effect module fixtures into source fx trees.
//
// A fixture describes one module the way a shader compiler would hand it
// over: code, entry points, resources, uniforms and techniques. Fixtures are
// TOML or YAML documents with the same schema:
//
//	code = "float4 main() : SV_Target { return 0; }"
//	total_uniform_size = 16
//
//	[[entry_points]]
//	name = "main"
//	stage = "pixel"
//
//	[[techniques]]
//	name = "Example"
//
//	[[techniques.passes]]
//	name = "Main"
//	vs_entry_point = "PostProcessVS"
//	ps_entry_point = "main"
//
// Unknown keys are rejected. Enum values are written by name, for example
// "rgba8", "min_mag_mip_linear" or "inv_src_alpha".
package fxload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/fxclone/fx"
)

// Format is a fixture encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for a file extension or format name that is
// neither TOML nor YAML.
var ErrUnknownFormat = errors.New("fxload: unknown fixture format")

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Load reads the fixture at path, choosing the decoder by extension.
func Load(path string) (*fx.Module, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fxload: %w", err)
	}
	m, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Decode reads one fixture document from r.
func Decode(r io.Reader, format Format) (*fx.Module, error) {
	var doc document
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, tomlError(err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("fxload: yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return doc.module()
}

// DecodeString is Decode over an in-memory document.
func DecodeString(s string, format Format) (*fx.Module, error) {
	return Decode(strings.NewReader(s), format)
}

func tomlError(err error) error {
	var de *toml.DecodeError
	if errors.As(err, &de) {
		row, col := de.Position()
		return fmt.Errorf("fxload: toml %d:%d: %w", row, col, err)
	}
	var sme *toml.StrictMissingError
	if errors.As(err, &sme) {
		return fmt.Errorf("fxload: toml: %s", strings.TrimSpace(sme.String()))
	}
	return fmt.Errorf("fxload: toml: %w", err)
}
