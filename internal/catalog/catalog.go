package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed labels.yaml
var labelsYAML []byte

type Label struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// Catalog holds the display labels for the fixed vocabularies of the API.
type Catalog struct {
	TravelClasses []Label `yaml:"travel_classes"`
	SortOptions   []Label `yaml:"sort_options"`
	TimePeriods   []Label `yaml:"time_periods"`
}

// Load parses the embedded label file.
func Load() (*Catalog, error) {
	return Parse(labelsYAML)
}

func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("failed to parse labels: %w", err)
	}
	if len(c.TravelClasses) == 0 || len(c.SortOptions) == 0 {
		return nil, fmt.Errorf("labels: travel_classes and sort_options must not be empty")
	}
	return &c, nil
}

// Name returns the label for code in list, or code itself.
func Name(list []Label, code string) string {
	for _, l := range list {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}
