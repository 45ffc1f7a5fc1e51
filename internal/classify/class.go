// Package classify answers, for every token in a markup stream, which
// semantic contexts enclose it, and provides filter/map/extract operations
// driven by that classification.
package classify

// Class is one of the fixed set of recognized semantic tag categories.
type Class uint8

const (
	ClassAbbr Class = iota
	ClassCode
	ClassEm
	ClassH1
	ClassH2
	ClassHead
	ClassHeader
	ClassMath
	ClassPre
	ClassScript
	ClassStyle
	ClassStrong

	numClasses
)

// tagClasses is the fixed name table: each recognized tag name maps to
// exactly one class. Any other tag name is unclassified. Changing an entry
// changes classification output for every caller, so treat this as a
// versioned contract.
var tagClasses = map[string]Class{
	"abbr":   ClassAbbr,
	"code":   ClassCode,
	"em":     ClassEm,
	"h1":     ClassH1,
	"h2":     ClassH2,
	"head":   ClassHead,
	"header": ClassHeader,
	"math":   ClassMath,
	"pre":    ClassPre,
	"script": ClassScript,
	"style":  ClassStyle,
	"strong": ClassStrong,
}

// ClassOf looks up the class for a tag name. ok is false for tag names
// outside the recognized set.
func ClassOf(name string) (c Class, ok bool) {
	c, ok = tagClasses[name]
	return c, ok
}
