package messenger

// Category is a set of message types. The zero value selects nothing.
type Category uint8

const (
	// CategoryGeneral marks general events.
	CategoryGeneral Category = 1 << iota
	// CategoryValidation marks violations found by validation layers.
	CategoryValidation
	// CategoryPerformance marks potentially non-optimal API use.
	CategoryPerformance
)

const (
	CategoryNone Category = 0
	CategoryAll           = CategoryGeneral | CategoryValidation | CategoryPerformance
)

var categoryNames = []flagName{
	{uint8(CategoryGeneral), "general"},
	{uint8(CategoryValidation), "validation"},
	{uint8(CategoryPerformance), "performance"},
}

var categoryPresets = map[string]uint8{
	"none": uint8(CategoryNone),
	"all":  uint8(CategoryAll),
}

func (c Category) General() bool     { return c&CategoryGeneral != 0 }
func (c Category) Validation() bool  { return c&CategoryValidation != 0 }
func (c Category) Performance() bool { return c&CategoryPerformance != 0 }

// Union returns the set of categories enabled in either c or other.
func (c Category) Union(other Category) Category {
	return c | other
}

// Contains reports whether every category in other is also in c.
func (c Category) Contains(other Category) bool {
	return c&other == other
}

func (c Category) String() string {
	return formatFlags(uint8(c&CategoryAll), categoryNames)
}

// ParseCategory parses a list such as "general|validation" or a preset.
func ParseCategory(text string) (Category, error) {
	v, err := parseFlags("category", text, categoryNames, categoryPresets)
	return Category(v), err
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	v, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
