// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Configs and repository summaries are decoded through it.
package yamlutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 4MB).
// Repository summaries embed whole documentation sets, so the limit is
// larger than a config file would need.
var MaxInputSize = 4 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// decode checks data against MaxInputSize and decodes it into v.
func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Unmarshal decodes YAML into v, ignoring unknown fields.
// Stored summaries use it so older records keep loading.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

// ReadFileStrict reads a YAML file and decodes it with UnmarshalStrict.
// Errors from reading keep their os error so callers can test os.ErrNotExist.
func ReadFileStrict(path string, v any) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return err
	}
	return UnmarshalStrict(data, v)
}

// Marshal encodes v as YAML. Multi-line strings use literal block style so
// stored markdown stays readable.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
