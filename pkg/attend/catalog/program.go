package catalog

import "strings"

// Category is the closed set of persistence categories a validated row
// can be dispatched to. Rows carrying a special identifier bypass the
// program-derived category and land in CategorySpecialMeals.
type Category string

const (
	CategoryMeals        Category = "meals"
	CategoryShowers      Category = "showers"
	CategoryLaundry      Category = "laundry"
	CategoryBicycles     Category = "bicycles"
	CategoryHaircuts     Category = "haircuts"
	CategoryHolidays     Category = "holidays"
	CategorySpecialMeals Category = "special-meals"
)

// Categories lists the non-special persistence categories in the fixed
// order bulk writes are issued in.
func Categories() []Category {
	return []Category{
		CategoryMeals,
		CategoryShowers,
		CategoryLaundry,
		CategoryBicycles,
		CategoryHaircuts,
		CategoryHolidays,
	}
}

// ProgramName returns the canonical program name a category belongs to,
// used when composing user-facing messages.
func (c Category) ProgramName() string {
	switch c {
	case CategoryMeals, CategorySpecialMeals:
		return "Meal"
	case CategoryShowers:
		return "Shower"
	case CategoryLaundry:
		return "Laundry"
	case CategoryBicycles:
		return "Bicycle"
	case CategoryHaircuts:
		return "Hair Cut"
	case CategoryHolidays:
		return "Holiday"
	default:
		return string(c)
	}
}

// Program is one entry of the fixed program catalog.
type Program struct {
	Name     string   // canonical display name, e.g. "Hair Cut"
	Category Category // persistence category the program maps to
}

// ProgramCatalog resolves free-text program names against the fixed
// enumerated program set. The set is not editable at run time.
type ProgramCatalog struct {
	programs []Program
	byName   map[string]Program
}

// NewProgramCatalog builds the catalog of known service programs.
func NewProgramCatalog() *ProgramCatalog {
	programs := []Program{
		{Name: "Meal", Category: CategoryMeals},
		{Name: "Shower", Category: CategoryShowers},
		{Name: "Laundry", Category: CategoryLaundry},
		{Name: "Bicycle", Category: CategoryBicycles},
		{Name: "Hair Cut", Category: CategoryHaircuts},
		{Name: "Holiday", Category: CategoryHolidays},
	}

	byName := make(map[string]Program, len(programs))
	for _, p := range programs {
		byName[strings.ToLower(p.Name)] = p
	}
	return &ProgramCatalog{programs: programs, byName: byName}
}

// Normalize resolves text against the catalog by case-insensitive exact
// match after trimming surrounding whitespace.
func (c *ProgramCatalog) Normalize(text string) (Program, bool) {
	p, ok := c.byName[strings.ToLower(strings.TrimSpace(text))]
	return p, ok
}

// All returns the catalog entries for display and template generation.
func (c *ProgramCatalog) All() []Program {
	out := make([]Program, len(c.programs))
	copy(out, c.programs)
	return out
}
