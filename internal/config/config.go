// Package config loads the optional optilens.yaml settings file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/optilens/optilens/internal/models"
)

// DefaultPath is where the analyze command looks for settings when no
// --config flag is given. The file is optional.
const DefaultPath = "optilens.yaml"

// Config carries the settings a run can override from a YAML file.
type Config struct {
	InputDir  string             `mapstructure:"input_dir"`
	OutputDir string             `mapstructure:"output_dir"`
	Workers   int                `mapstructure:"workers"`
	RankTopN  int                `mapstructure:"rank_top_n"`
	Weights   map[string]float64 `mapstructure:"weights"`
}

// Default returns the built-in settings: scan ./optimizations, write
// ./reports, one file at a time, ranking pages of 30 rows, and the
// catalog weights.
func Default() Config {
	return Config{
		InputDir:  "optimizations",
		OutputDir: "reports",
		Workers:   1,
		RankTopN:  30,
	}
}

// WeightVector merges the configured weight overrides over the catalog
// defaults. Metrics the file does not name keep their default weight.
func (c Config) WeightVector() models.WeightVector {
	w := models.DefaultWeights()
	for k, v := range c.Weights {
		w[k] = v
	}
	return w
}

// Load reads and validates a settings file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates raw YAML against the settings schema and decodes it
// over the defaults. An empty document yields the defaults.
func Parse(data []byte) (Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse YAML: %w", err)
	}
	if doc == nil {
		return Default(), nil
	}

	if errs := validateAgainstSchema(configSchema, doc); len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid settings: %s", strings.Join(errs, "; "))
	}

	cfg := Default()
	if err := mapstructure.Decode(doc, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode settings: %w", err)
	}
	return cfg, nil
}

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// configSchema is the compiled JSON Schema for optilens.yaml files.
var configSchema *jsonschema.Schema

func init() {
	configSchema = mustCompileSchema(configSchemaJSON, "optilens.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

const configSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "optilens settings",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "input_dir": { "type": "string", "minLength": 1 },
    "output_dir": { "type": "string", "minLength": 1 },
    "workers": { "type": "integer", "minimum": 1, "maximum": 64 },
    "rank_top_n": { "type": "integer", "minimum": 1 },
    "weights": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "profit": { "type": "number" },
        "drawdown": { "type": "number" },
        "sharpe_ratio": { "type": "number" },
        "profit_factor": { "type": "number" },
        "recovery_factor": { "type": "number" },
        "expected_payoff": { "type": "number" }
      }
    }
  }
}`
