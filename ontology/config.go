package ontology

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultMaxListLength bounds RDF list traversal in the union resolver.
const DefaultMaxListLength = 10000

var validate = validator.New()

// Config controls parsing and extraction. The zero value is not valid; start
// from DefaultConfig.
type Config struct {
	// PreferredLanguage is tried first when picking a label or description.
	PreferredLanguage string `yaml:"preferred_language" validate:"omitempty,bcp47_language_tag"`
	// IncludeSkolemizedBlankNodes keeps blank-node classes and properties
	// under urn:bnode: identifiers.
	IncludeSkolemizedBlankNodes bool `yaml:"include_skolemized_blank_nodes"`
	// MaxListLength caps the members read from one RDF list.
	MaxListLength int `yaml:"max_list_length" validate:"min=1"`
	// DetectionLineLimit caps the lines the N-Triples handler inspects.
	DetectionLineLimit int `yaml:"detection_line_limit" validate:"min=1,max=1000"`
	// ForceXMLFallback makes the RDF/XML handler skip the graph parse.
	ForceXMLFallback bool `yaml:"force_xml_fallback"`
	// CommonPrefixInference adds well-known prefixes whose namespace is used
	// in the graph but never declared.
	CommonPrefixInference bool `yaml:"common_prefix_inference"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		MaxListLength:         DefaultMaxListLength,
		DetectionLineLimit:    DefaultDetectionLineLimit,
		CommonPrefixInference: true,
	}
}

// Validate checks the configuration against its field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func formatValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "bcp47_language_tag":
		return fmt.Sprintf("%s must be a BCP 47 language tag", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
