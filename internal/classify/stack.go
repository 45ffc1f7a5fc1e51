package classify

import "golang.org/x/net/html"

// frame is one currently-open classified tag.
type frame struct {
	name  string
	class Class
}

// Stack holds the currently-open classified tags, outermost first. Open tags
// whose name is not in the class table are never pushed, so they do not count
// toward nesting here even though they nest in the underlying markup.
type Stack []frame

// Has reports whether any frame on the stack carries the given class.
// Only presence matters; duplicates collapse.
func (s Stack) Has(c Class) bool {
	for _, f := range s {
		if f.class == c {
			return true
		}
	}
	return false
}

// Warning records a close tag that named a classified tag but did not match
// the top of the stack. The scan ignores it either way; strict callers may
// want to surface it.
type Warning struct {
	Index int    // position of the close tag in the token sequence
	Name  string // tag name of the unmatched close
}

// Scan folds over the tokens left to right and returns one stack snapshot per
// step: snapshot 0 is the empty stack before any token, snapshot i+1 is the
// stack after token i. len(result) == len(tokens)+1.
//
// Transition per token: a classified open tag pushes, a close tag matching
// the top frame's name pops, everything else leaves the stack alone.
// Unmatched closes are tolerated silently; that tolerance is deliberate and
// load-bearing for real-world input.
func Scan(tokens []html.Token) []Stack {
	snapshots, _ := scan(tokens, false)
	return snapshots
}

// ScanStrict is Scan plus a warning for every close tag that names a
// classified tag without matching the stack top. The snapshots are identical
// to Scan's; strictness only adds reporting. Closes of unclassified tags
// never warn, since their opens were never pushed to begin with.
func ScanStrict(tokens []html.Token) ([]Stack, []Warning) {
	return scan(tokens, true)
}

func scan(tokens []html.Token, strict bool) ([]Stack, []Warning) {
	snapshots := make([]Stack, 0, len(tokens)+1)
	var warnings []Warning

	stack := make(Stack, 0, 8)
	snapshots = append(snapshots, nil)

	for i, t := range tokens {
		switch t.Type {
		case html.StartTagToken:
			if c, ok := ClassOf(t.Data); ok {
				stack = append(stack, frame{name: t.Data, class: c})
			}
		case html.EndTagToken:
			if len(stack) > 0 && stack[len(stack)-1].name == t.Data {
				stack = stack[:len(stack)-1]
			} else if strict {
				if _, ok := ClassOf(t.Data); ok {
					warnings = append(warnings, Warning{Index: i, Name: t.Data})
				}
			}
		}
		// Snapshots must not alias the working stack.
		snap := make(Stack, len(stack))
		copy(snap, stack)
		snapshots = append(snapshots, snap)
	}

	return snapshots, warnings
}
