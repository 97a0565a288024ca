package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gphotos-admin/internal/errors"
	"gphotos-admin/internal/types"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a profile configuration file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ParseFormat accepts yaml, yml, toml and json
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", errors.InvalidInput(s, "yaml, toml or json")
}

// FormatForPath picks the encoding from a file extension
func FormatForPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// EncodeProfile renders a worker configuration in the given format
func EncodeProfile(cfg types.Configuration, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.InternalError("encode yaml", err)
		}
		return buf.Bytes(), enc.Close()
	case FormatTOML:
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, errors.InternalError("encode toml", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.InternalError("encode json", err)
		}
		return append(data, '\n'), nil
	}
	return nil, errors.InvalidInput(string(format), "yaml, toml or json")
}

// DecodeProfile parses a worker configuration. Fields missing from the
// document keep the values already in base.
func DecodeProfile(data []byte, format Format, base types.Configuration) (types.Configuration, error) {
	cfg := base
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	case FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	case FormatJSON:
		err = json.Unmarshal(data, &cfg)
	default:
		return base, errors.InvalidInput(string(format), "yaml, toml or json")
	}
	if err != nil {
		return base, errors.Wrap(errors.ErrConfigParse, "Failed to parse profile configuration", err)
	}
	return cfg, nil
}

// LoadProfileFile reads a worker configuration file, picking the format from
// its extension
func LoadProfileFile(path string, base types.Configuration) (types.Configuration, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return base, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, errors.ConfigNotFound(path)
		}
		return base, errors.ConfigParseError(path, err)
	}
	return DecodeProfile(data, format, base)
}
