package adapter

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"plant-pal/internal/core/model"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogRawData []byte

// catalogFile is the top-level structure of a catalog YAML document.
type catalogFile struct {
	Vocabulary model.Vocabulary `yaml:"vocabulary"`
	Plants     []model.Plant    `yaml:"plants"`
}

var (
	defaultOnce sync.Once
	defaultRepo *PlantRepo
	defaultErr  error
)

// DefaultCatalog returns the embedded catalog, parsed on first use.
func DefaultCatalog() (*PlantRepo, error) {
	defaultOnce.Do(func() {
		defaultRepo, defaultErr = LoadCatalog(catalogRawData)
	})
	return defaultRepo, defaultErr
}

// LoadCatalogFile reads a catalog YAML file from disk.
func LoadCatalogFile(path string) (*PlantRepo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return LoadCatalog(data)
}

// LoadCatalog decodes YAML bytes and validates the result. Unknown keys are
// rejected so a misspelt field cannot silently drop data.
func LoadCatalog(data []byte) (*PlantRepo, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	return NewPlantRepo(f.Vocabulary, f.Plants)
}
