// Package catalog reads and writes material catalogs and carries the
// built-in default catalog.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"Pavex/internal/calc/pavement"
)

// ErrNoMaterials is returned for a catalog document with no material rows.
var ErrNoMaterials = errors.New("catalog: no materials")

// Catalog is a named list of materials as stored on disk or in the database.
type Catalog struct {
	Name        string              `yaml:"name,omitempty" json:"name,omitempty"`
	Description string              `yaml:"description,omitempty" json:"description,omitempty"`
	Materials   []pavement.Material `yaml:"materials" json:"materials"`
}

// Validate checks every material and that names are unique.
func (c Catalog) Validate() error {
	if len(c.Materials) == 0 {
		return ErrNoMaterials
	}
	_, err := pavement.NewCatalog(c.Materials)
	return err
}

// Decode reads a catalog document. Both YAML and JSON are accepted; a bare
// list of materials is read as an unnamed catalog.
func Decode(r io.Reader) (Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		var list []pavement.Material
		if lerr := yaml.Unmarshal(data, &list); lerr != nil {
			return Catalog{}, fmt.Errorf("parse catalog: %w", err)
		}
		c = Catalog{Materials: list}
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Load reads a catalog file.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Encode writes c as YAML.
func Encode(w io.Writer, c Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
