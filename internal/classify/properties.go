package classify

// Properties is the per-token classification record: one flag per class,
// true iff that class appears anywhere in the stack at that token. Values
// are computed once and never mutated.
type Properties struct {
	Abbr   bool
	Code   bool
	Em     bool
	H1     bool
	H2     bool
	Head   bool
	Header bool
	Math   bool
	Pre    bool
	Script bool
	Style  bool
	Strong bool
}

// PropertiesOf derives the classification record from a stack snapshot.
func PropertiesOf(s Stack) Properties {
	return Properties{
		Abbr:   s.Has(ClassAbbr),
		Code:   s.Has(ClassCode),
		Em:     s.Has(ClassEm),
		H1:     s.Has(ClassH1),
		H2:     s.Has(ClassH2),
		Head:   s.Has(ClassHead),
		Header: s.Has(ClassHeader),
		Math:   s.Has(ClassMath),
		Pre:    s.Has(ClassPre),
		Script: s.Has(ClassScript),
		Style:  s.Has(ClassStyle),
		Strong: s.Has(ClassStrong),
	}
}

// Heading reports enclosure in any h1 or h2.
func (p Properties) Heading() bool { return p.H1 || p.H2 }

// Title reports an h1 inside a header element.
func (p Properties) Title() bool { return p.Header && p.H1 }

// Subtitle reports an h2 inside a header element.
func (p Properties) Subtitle() bool { return p.Header && p.H2 }

// Predicate selects tokens by their classification.
type Predicate func(Properties) bool
