package dataset

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-dft/logging"
)

// Format identifies a sample file encoding
type Format string

const (
	FormatAuto Format = "auto"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatF64  Format = "f64le"
)

// SampleSet is a decoded signal
type SampleSet struct {
	Name    string    `json:"name,omitempty" yaml:"name,omitempty"`
	Samples []float64 `json:"samples" yaml:"samples"`
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	Format     Format `json:"format"`      // "auto" picks by file extension
	MaxSamples int    `json:"max_samples"` // 0 = no limit
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		Format:     FormatAuto,
		MaxSamples: 0,
	}
}

// Decoder turns sample files into []float64
type Decoder struct {
	config *DecoderConfig
}

// NewDecoder creates a new sample decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{config: config}
}

// FormatForPath picks a format from the file extension
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".f64", ".raw", ".bin":
		return FormatF64
	default:
		return FormatText
	}
}

// DecodeFile reads and decodes a sample file
func (d *Decoder) DecodeFile(filename string) (*SampleSet, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "sample_decoder",
		"function":  "DecodeFile",
		"filename":  filename,
	})

	data, err := os.ReadFile(filename)
	if err != nil {
		logger.Error(err, "Failed to read sample file")
		return nil, fmt.Errorf("failed to read sample file: %w", err)
	}

	format := d.config.Format
	if format == "" || format == FormatAuto {
		format = FormatForPath(filename)
	}

	set, err := d.DecodeBytes(data, format)
	if err != nil {
		logger.Error(err, "Failed to decode sample file", logging.Fields{"format": format})
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	if set.Name == "" {
		set.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}

	logger.Debug("Sample file decoded", logging.Fields{
		"format":  format,
		"samples": len(set.Samples),
	})

	return set, nil
}

// DecodeReader decodes samples from an io.Reader
func (d *Decoder) DecodeReader(reader io.Reader, format Format) (*SampleSet, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}
	return d.DecodeBytes(data, format)
}

// DecodeBytes decodes samples held in memory. FormatAuto is treated as text.
func (d *Decoder) DecodeBytes(data []byte, format Format) (*SampleSet, error) {
	var (
		set *SampleSet
		err error
	)

	switch format {
	case FormatYAML:
		set, err = decodeYAML(data)
	case FormatJSON:
		set, err = decodeJSON(data)
	case FormatF64:
		set, err = decodeF64(data)
	case FormatText, FormatAuto, "":
		set, err = decodeText(data)
	default:
		return nil, fmt.Errorf("unsupported sample format %q", format)
	}
	if err != nil {
		return nil, err
	}

	for i, v := range set.Samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("sample %d is not finite: %v", i, v)
		}
	}

	if d.config.MaxSamples > 0 && len(set.Samples) > d.config.MaxSamples {
		set.Samples = set.Samples[:d.config.MaxSamples]
	}

	return set, nil
}

// decodeYAML accepts either a SampleSet mapping or a bare sequence
func decodeYAML(data []byte) (*SampleSet, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return &SampleSet{Samples: []float64{}}, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var samples []float64
		if err := root.Decode(&samples); err != nil {
			return nil, fmt.Errorf("invalid YAML sample list: %w", err)
		}
		return &SampleSet{Samples: samples}, nil
	}

	var set SampleSet
	if err := root.Decode(&set); err != nil {
		return nil, fmt.Errorf("invalid YAML sample set: %w", err)
	}
	return &set, nil
}

// decodeJSON accepts either a SampleSet object or a bare array
func decodeJSON(data []byte) (*SampleSet, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var samples []float64
		if err := json.Unmarshal(trimmed, &samples); err != nil {
			return nil, fmt.Errorf("invalid JSON sample list: %w", err)
		}
		return &SampleSet{Samples: samples}, nil
	}

	var set SampleSet
	if err := json.Unmarshal(trimmed, &set); err != nil {
		return nil, fmt.Errorf("invalid JSON sample set: %w", err)
	}
	return &set, nil
}

// decodeText parses decimal values separated by whitespace or commas.
// Lines starting with '#' are comments.
func decodeText(data []byte) (*SampleSet, error) {
	samples := []float64{}

	for lineNo, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == ';' || r == '\r'
		})
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid sample %q: %w", lineNo+1, field, err)
			}
			samples = append(samples, v)
		}
	}

	return &SampleSet{Samples: samples}, nil
}

// decodeF64 converts raw little-endian float64 bytes; a trailing partial value is dropped
func decodeF64(data []byte) (*SampleSet, error) {
	sampleCount := len(data) / 8
	samples := make([]float64, sampleCount)

	for i := range sampleCount {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}

	return &SampleSet{Samples: samples}, nil
}

// EncodeF64 is the inverse of the f64le format
func EncodeF64(samples []float64) []byte {
	out := make([]byte, 8*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(v))
	}
	return out
}
