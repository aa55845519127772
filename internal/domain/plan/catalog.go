package plan

// Option is a selectable choice offered to the learner.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Catalog holds the goal, background and time-commitment choices offered to
// callers. It is built once at startup and only read afterwards; accessors
// return copies.
type Catalog struct {
	goals       []string
	backgrounds []Option
	timeOptions []Option
}

// NewCatalog creates a Catalog from the given lists.
func NewCatalog(goals []string, backgrounds, timeOptions []Option) Catalog {
	return Catalog{
		goals:       append([]string(nil), goals...),
		backgrounds: append([]Option(nil), backgrounds...),
		timeOptions: append([]Option(nil), timeOptions...),
	}
}

// DefaultCatalog returns the built-in choices.
func DefaultCatalog() Catalog {
	return NewCatalog(
		[]string{
			"Become a Junior Web Developer",
			"Learn Data Analysis",
			"Master Python Programming",
			"Become a UI/UX Designer",
			"Learn Mobile App Development",
			"Master Machine Learning Basics",
			"Learn Full-Stack Development",
			"Become a Data Scientist",
			"Learn Cloud Computing",
			"Master JavaScript",
		},
		[]Option{
			{ID: "beginner", Label: "Complete Beginner"},
			{ID: "some_exp", Label: "Some Experience"},
			{ID: "intermediate", Label: "Intermediate"},
			{ID: "professional", Label: "Professional"},
		},
		[]Option{
			{ID: "5-10", Label: "5-10 hours/week"},
			{ID: "10-15", Label: "10-15 hours/week"},
			{ID: "15-20", Label: "15-20 hours/week"},
			{ID: "20+", Label: "20+ hours/week"},
		},
	)
}

// Goals returns the suggested learning goals.
func (c Catalog) Goals() []string { return append([]string(nil), c.goals...) }

// Backgrounds returns the background options.
func (c Catalog) Backgrounds() []Option { return append([]Option(nil), c.backgrounds...) }

// TimeOptions returns the weekly time-commitment options.
func (c Catalog) TimeOptions() []Option { return append([]Option(nil), c.timeOptions...) }
