package regions_test

import (
	"testing"

	"github.com/digigeolab/parkphotos/pkg/regions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const regionsYAML = `regions:
  - name: Eastern hills
    parks:
      - Kolin kansallispuisto
      - Hossan kansallispuisto
  - name: Forests and lakes
    parks:
      - Nuuksion kansallispuisto
      - Hossan kansallispuisto
`

func load(t *testing.T, doc string) *regions.Regions {
	t.Helper()
	var res regions.Regions
	require.NoError(t, yaml.Unmarshal([]byte(doc), &res))
	return &res
}

func TestLookup(t *testing.T) {
	r := load(t, regionsYAML)

	got, ok := r.Lookup("Kolin kansallispuisto")
	assert.True(t, ok)
	assert.Equal(t, "Eastern hills", got)

	got, ok = r.Lookup("Nuuksion kansallispuisto")
	assert.True(t, ok)
	assert.Equal(t, "Forests and lakes", got)

	_, ok = r.Lookup("Tuntematon puisto")
	assert.False(t, ok)
}

func TestLookupDuplicateFirstWins(t *testing.T) {
	r := load(t, regionsYAML)

	got, ok := r.Lookup("Hossan kansallispuisto")
	assert.True(t, ok)
	assert.Equal(t, "Eastern hills", got)
}

func TestValidate(t *testing.T) {
	r := load(t, regionsYAML)
	require.NoError(t, r.Validate())

	// the duplicated park is reported, once
	require.Len(t, r.Warnings, 1)
	w := r.Warnings[0]
	assert.Equal(t, "Hossan kansallispuisto", w.Park)
	assert.Equal(t,
		[]string{"Eastern hills", "Forests and lakes"}, w.Regions)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		msg, doc string
	}{
		{"empty config", "regions: []"},
		{"region without name", `regions:
  - name: ""
    parks: [Kolin kansallispuisto]`},
		{"region without parks", `regions:
  - name: Eastern hills
    parks: []`},
	}

	for _, v := range tests {
		r := load(t, v.doc)
		assert.Error(t, r.Validate(), v.msg)
	}
}
