package command

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Output appends one line to the console output pane.
type Output func(line string)

// Action is a leaf command behavior. It returns true when the action was
// performed and false when the input was insufficient, so callers can
// tell "handled" from "just printed help". Errors abort the current
// invocation; the color command relies on this to surface validation
// failures before anything is persisted.
type Action func(words []string) (handled bool, err error)

// Node is one named, documented unit in the command tree.
type Node struct {
	name        string
	description string
	children    []*Node
	action      Action
	output      Output
}

// NewBranch creates a routing node with the given children. The child
// slice is built fresh per call; nodes never share child storage.
func NewBranch(name, description string, output Output, children ...*Node) *Node {
	return &Node{
		name:        name,
		description: description,
		children:    append([]*Node(nil), children...),
		output:      output,
	}
}

// NewLeaf creates an action node.
func NewLeaf(name, description string, output Output, action Action) *Node {
	return &Node{
		name:        name,
		description: description,
		action:      action,
		output:      output,
	}
}

// NewRoot creates the unnamed tree root.
func NewRoot(output Output, children ...*Node) *Node {
	return NewBranch("", "", output, children...)
}

// Name returns the node's match token ("" for the root).
func (n *Node) Name() string {
	return n.name
}

// Description returns the node's one-line doc string.
func (n *Node) Description() string {
	return n.description
}

// Children returns the node's children in declared order.
func (n *Node) Children() []*Node {
	return n.children
}

// addChildren appends children to an action node, used by the machine
// setter which carries an options subtree alongside its action.
func (n *Node) addChildren(children ...*Node) *Node {
	n.children = append(n.children, children...)
	return n
}

// Handle dispatches tokenized input at this node.
//
// Branch nodes print their capitalized name with an underline, then
// either descend into the child matching the first word, list their
// children when no words remain, or report the words as unsupported.
// Action nodes run their action; a node carrying both (the machine
// setter) lets a matching child win before falling back to the action.
func (n *Node) Handle(words []string) (bool, error) {
	if n.name != "" && n.action == nil {
		n.output(capitalize(n.name))
		n.output(strings.Repeat("-", len(n.name)))
	}

	if len(words) > 0 {
		if child := n.child(words[0]); child != nil {
			return child.Handle(words[1:])
		}
		if n.action != nil {
			return n.action(words)
		}
		n.output("Unsupported command: " + strings.Join(words, " "))
		return false, nil
	}

	if n.action != nil {
		return n.action(nil)
	}
	for _, child := range n.children {
		n.output(child.name + " - " + child.description)
	}
	return false, nil
}

// child returns the first child whose name equals the token, or nil.
// Matching is exact and case sensitive; sibling names are unique by
// registry construction, so first match is the only match.
func (n *Node) child(token string) *Node {
	for _, c := range n.children {
		if c.name == token {
			return c
		}
	}
	return nil
}

// capitalize upper-cases the first rune and leaves the rest unchanged.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
