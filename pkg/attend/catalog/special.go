package catalog

import (
	"sort"
	"strings"
)

// SpecialMapping is the category/label pair a special identifier
// resolves to. Special identifiers are guest-id-shaped tokens that
// never correspond to an individual guest profile.
type SpecialMapping struct {
	Category Category
	Label    string
}

// SpecialIDCatalog is the fixed table of special identifiers. It is
// not editable at run time; rows carrying one of these identifiers are
// only legal for the meal program.
type SpecialIDCatalog struct {
	byID map[string]SpecialMapping
}

// NewSpecialIDCatalog builds the fixed special-identifier table.
func NewSpecialIDCatalog() *SpecialIDCatalog {
	return &SpecialIDCatalog{
		byID: map[string]SpecialMapping{
			"M94816825": {Category: CategorySpecialMeals, Label: "RV meals"},
			"M43918802": {Category: CategorySpecialMeals, Label: "Shelter meals"},
			"M77260902": {Category: CategorySpecialMeals, Label: "Day Center meals"},
		},
	}
}

// Find looks up an identifier in the table.
func (c *SpecialIDCatalog) Find(id string) (SpecialMapping, bool) {
	m, ok := c.byID[strings.TrimSpace(id)]
	return m, ok
}

// IDs returns the known identifiers sorted for stable template output.
func (c *SpecialIDCatalog) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
