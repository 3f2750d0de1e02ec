package constraint

// #region catalog

// Catalog is an ordered key → Definition registry. It is never mutated
// after construction; Merged builds a new catalog instead.
type Catalog struct {
	defs  []Definition
	index map[string]int
}

// NewCatalog builds a catalog from definitions in order. A repeated key
// replaces the earlier entry in place.
func NewCatalog(defs []Definition) *Catalog {
	c := &Catalog{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if i, ok := c.index[d.Key]; ok {
			c.defs[i] = d
			continue
		}
		c.index[d.Key] = len(c.defs)
		c.defs = append(c.defs, d)
	}
	return c
}

// Get looks up a definition by key.
func (c *Catalog) Get(key string) (Definition, bool) {
	i, ok := c.index[key]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

// All returns a snapshot of all definitions in catalog order.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Merged returns a new catalog where each custom definition replaces the
// base entry sharing its key (whole entry, original position kept) or is
// appended. The base catalog is untouched.
func (c *Catalog) Merged(custom []Definition) *Catalog {
	merged := NewCatalog(c.defs)
	for _, d := range custom {
		if i, ok := merged.index[d.Key]; ok {
			merged.defs[i] = d
			continue
		}
		merged.index[d.Key] = len(merged.defs)
		merged.defs = append(merged.defs, d)
	}
	return merged
}

// #endregion catalog

// #region defaults

// DefaultDefinitions returns the built-in constraint set.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Key:   "peanut",
			Level: LevelFatal,
			Terms: []string{"peanut", "peanuts", "groundnut", "arachis", "satay", "praline", "nu cham"},
		},
		{
			Key:   "shellfish",
			Level: LevelFatal,
			Terms: []string{"shrimp", "crab", "lobster", "prawn", "crayfish", "scallop", "oyster", "clam", "mussel"},
		},
		{
			Key:   "halal",
			Level: LevelReligious,
			Terms: []string{
				"pork", "bacon", "ham", "lard", "gelatin", "pepperoni", "prosciutto",
				"wine", "alcohol", "beer", "rum", "vanilla extract",
			},
		},
		{
			Key:   "celiac",
			Level: LevelMedical,
			Terms: []string{
				"wheat", "barley", "rye", "malt", "soy sauce", "couscous",
				"bulgur", "semolina", "spelt", "triticale", "miso",
			},
		},
	}
}

// DefaultCatalog returns a catalog of the built-in constraint set.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultDefinitions())
}

// #endregion defaults
