package catalog_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"Pavex/internal/calc/pavement"
	"Pavex/internal/catalog"
)

const yamlDoc = `
name: county-2024
description: county unit prices
materials:
  - name: Asphalt Surface
    sn: 0.44
    min_lift: 1.5
    max_lift: 4
    density: 145
    cost: 130
    unit: ton
    surface: true
  - name: Lime Treated Subgrade
    sn: 0.2
    min_lift: 4
    max_lift: 8
    density: 120
    cost: 300
    unit: cyd
    subgrade: true
    alkaline: true
`

func TestDecode_YAMLDocument(t *testing.T) {
	c, err := catalog.Decode(strings.NewReader(yamlDoc))
	require.NoError(t, err)
	require.Equal(t, "county-2024", c.Name)
	require.Len(t, c.Materials, 2)

	surface := c.Materials[0]
	require.Equal(t, "Asphalt Surface", surface.Name)
	require.Equal(t, pavement.UnitTon, surface.Unit)
	require.True(t, surface.Surface)
	require.InDelta(t, 0.44, surface.Coefficient, 1e-12)

	lime := c.Materials[1]
	require.True(t, lime.SubgradeTreatment)
	require.True(t, lime.Alkaline)
	require.False(t, lime.Surface)
}

func TestDecode_BareListAndJSON(t *testing.T) {
	list := `
- {name: A, sn: 0.4, min_lift: 1, max_lift: 3, cost: 100, unit: sqyd, surface: true}
- {name: B, sn: 0.1, min_lift: 2, max_lift: 8, density: 130, cost: 30, unit: ton}
`
	c, err := catalog.Decode(strings.NewReader(list))
	require.NoError(t, err)
	require.Empty(t, c.Name)
	require.Len(t, c.Materials, 2)

	js := `{"name":"json","materials":[{"name":"A","sn":0.4,"min_lift":1,"max_lift":3,"cost":100,"unit":"sqyd","surface":true}]}`
	c, err = catalog.Decode(strings.NewReader(js))
	require.NoError(t, err)
	require.Equal(t, "json", c.Name)
	require.Equal(t, pavement.UnitSQYD, c.Materials[0].Unit)
}

func TestDecode_Rejects(t *testing.T) {
	_, err := catalog.Decode(strings.NewReader("name: empty\nmaterials: []\n"))
	require.ErrorIs(t, err, catalog.ErrNoMaterials)

	_, err = catalog.Decode(strings.NewReader("materials:\n  - {name: Zero, sn: 0, min_lift: 1, max_lift: 2}\n"))
	require.ErrorIs(t, err, pavement.ErrInvalidMaterial)

	dup := "materials:\n  - {name: A, sn: 1, min_lift: 1, max_lift: 2}\n  - {name: A, sn: 1, min_lift: 1, max_lift: 2}\n"
	_, err = catalog.Decode(strings.NewReader(dup))
	require.ErrorIs(t, err, pavement.ErrDuplicateMaterial)

	_, err = catalog.Decode(strings.NewReader("materials: [unterminated"))
	require.Error(t, err)
}

func TestLoadAndEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, catalog.Encode(&buf, catalog.Default()))

	path := filepath.Join(t.TempDir(), "default.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	c, err := catalog.Load(path)
	require.NoError(t, err)
	require.Equal(t, catalog.Default(), c)

	_, err = catalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	c := catalog.Default()
	require.NoError(t, c.Validate())
	require.Len(t, c.Materials, 7)

	surfaces, subgrades := 0, 0
	for _, m := range c.Materials {
		if m.Surface {
			surfaces++
		}
		if m.SubgradeTreatment {
			subgrades++
		}
		require.True(t, m.Priced(), m.Name)
	}
	require.Equal(t, 1, surfaces)
	require.Equal(t, 1, subgrades)
}
