package output

import (
	"encoding/json"
	"io"

	"github.com/rohankatakam/healthrisk/internal/models"
	"gopkg.in/yaml.v3"
)

// JSONFormatter outputs the snapshot as indented JSON
type JSONFormatter struct{}

func (f *JSONFormatter) Format(snap models.Snapshot, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snap)
}

// YAMLFormatter outputs the snapshot as YAML
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(snap models.Snapshot, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(snap); err != nil {
		return err
	}
	return encoder.Close()
}
