package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCriteria_NotFiltered(t *testing.T) {
	// Every combination of the four fields being set or empty.
	for mask := 0; mask < 16; mask++ {
		var c Criteria
		if mask&1 != 0 {
			c.SearchQuery = "epel"
		}
		if mask&2 != 0 {
			c.Versions = []string{"8"}
		}
		if mask&4 != 0 {
			c.Architectures = []string{"x86_64"}
		}
		if mask&8 != 0 {
			c.Statuses = []string{StatusValid}
		}
		assert.Equal(t, mask == 0, c.NotFiltered(), "mask %04b", mask)
	}

	assert.True(t, Criteria{SearchQuery: "   "}.NotFiltered())
	assert.True(t, Criteria{Versions: []string{}}.NotFiltered())
}

func TestCriteria_ToggleIsInvolution(t *testing.T) {
	t.Run("add then remove", func(t *testing.T) {
		var c Criteria
		once, changed := c.ToggleVersion("el7")
		assert.True(t, changed)
		assert.Equal(t, []string{"el7"}, once.Versions)

		twice, changed := once.ToggleVersion("el7")
		assert.True(t, changed)
		assert.Equal(t, c, twice)
	})

	t.Run("remove then add", func(t *testing.T) {
		c := Criteria{Versions: []string{"el7", "el8", "el9"}}
		once, _ := c.ToggleVersion("el8")
		assert.Equal(t, []string{"el7", "el9"}, once.Versions)

		twice, _ := once.ToggleVersion("el8")
		assert.True(t, c.Equal(twice))
	})

	t.Run("receiver untouched", func(t *testing.T) {
		c := Criteria{Architectures: []string{"x86_64", "aarch64"}}
		_, _ = c.ToggleArchitecture("x86_64")
		assert.Equal(t, []string{"x86_64", "aarch64"}, c.Architectures)
	})

	t.Run("status and architecture", func(t *testing.T) {
		var c Criteria
		c, _ = c.ToggleStatus(StatusInvalid)
		c, _ = c.ToggleArchitecture("aarch64")
		assert.Equal(t, []string{StatusInvalid}, c.Statuses)
		assert.Equal(t, []string{"aarch64"}, c.Architectures)

		c, _ = c.ToggleStatus(StatusInvalid)
		c, _ = c.ToggleArchitecture("aarch64")
		assert.True(t, c.NotFiltered())
	})

	t.Run("empty value is ignored", func(t *testing.T) {
		c, changed := Criteria{}.ToggleVersion("")
		assert.False(t, changed)
		assert.True(t, c.NotFiltered())
	})
}

func TestCriteria_WithSearchQuery(t *testing.T) {
	c, changed := Criteria{}.WithSearchQuery("EPEL")
	assert.True(t, changed)
	assert.Equal(t, "EPEL", c.SearchQuery)

	// Rapid repeated updates with the same debounced value are no-ops.
	again, changed := c.WithSearchQuery("EPEL")
	assert.False(t, changed)
	assert.Equal(t, c, again)

	_, changed = c.WithSearchQuery(" EPEL ")
	assert.False(t, changed)
}

func TestCriteria_Cleared(t *testing.T) {
	c := Criteria{SearchQuery: "x", Statuses: []string{StatusPending}}
	cleared, changed := c.Cleared()
	assert.True(t, changed)
	assert.True(t, cleared.NotFiltered())

	_, changed = cleared.Cleared()
	assert.False(t, changed)
}

func TestCriteria_NormalizedAndEqual(t *testing.T) {
	a := Criteria{
		SearchQuery:   " epel ",
		Versions:      []string{"9", "8"},
		Architectures: []string{"x86_64", "aarch64"},
	}
	b := Criteria{
		SearchQuery:   "epel",
		Versions:      []string{"8", "9"},
		Architectures: []string{"aarch64", "x86_64"},
		Statuses:      []string{},
	}

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Normalized(), b.Normalized())
	assert.Equal(t, []string{"8", "9"}, a.Normalized().Versions)
	assert.Nil(t, b.Normalized().Statuses)

	assert.False(t, a.Equal(Criteria{SearchQuery: "epel"}))
}

func TestCriteria_Chips(t *testing.T) {
	c := Criteria{
		SearchQuery:   "EPEL",
		Versions:      []string{"el7"},
		Architectures: []string{"aarch64"},
		Statuses:      []string{StatusInvalid},
	}

	assert.Equal(t, []Chip{
		{Category: CategorySearch, Value: "EPEL"},
		{Category: CategoryVersion, Value: "el7"},
		{Category: CategoryArchitecture, Value: "aarch64"},
		{Category: CategoryStatus, Value: StatusInvalid},
	}, c.Chips())
	assert.Empty(t, Criteria{}.Chips())
}
