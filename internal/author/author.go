package author

// Author is a single record in the store.
type Author struct {
	// ID is assigned at creation and never changes afterwards.
	ID   string     `json:"id" yaml:"id"`
	Info PersonInfo `json:"info" yaml:"info"`
}

// PersonInfo holds the descriptive fields of an author.
// Age and Gender are nil until something supplies them.
type PersonInfo struct {
	Name   string  `json:"name" yaml:"name"`
	Age    *int    `json:"age,omitempty" yaml:"age,omitempty"`
	Gender *string `json:"gender,omitempty" yaml:"gender,omitempty"`
}

// Clone returns a deep copy of the author.
func (a *Author) Clone() *Author {
	if a == nil {
		return nil
	}
	c := &Author{ID: a.ID, Info: PersonInfo{Name: a.Info.Name}}
	if a.Info.Age != nil {
		age := *a.Info.Age
		c.Info.Age = &age
	}
	if a.Info.Gender != nil {
		gender := *a.Info.Gender
		c.Info.Gender = &gender
	}
	return c
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }
