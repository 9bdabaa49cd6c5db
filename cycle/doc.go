// Package cycle detects retain cycles in the strong-reference graph.
//
// Reference counting frees an object when its last strong holder lets
// go. A closed chain of strong references defeats that: every member of
// the chain holds the next one at a count above zero forever. This
// package finds such chains by traversal instead of counting: anything
// a root set cannot reach, yet is still live, is leaked.
//
// Payloads expose their strong edges by implementing Referencer:
//
//	type Node struct {
//	    next handle.Strong[*Node]
//	}
//
//	func (n *Node) StrongRefs() []arena.Ref {
//	    return []arena.Ref{n.next.Ref()}
//	}
//
// Weak and unowned edges are deliberately absent from StrongRefs; that
// is the whole point of using them. A cycle closed by a weak back edge
// is invisible to the detector because it is invisible to the counter.
//
// The detector is a test and debugging utility. It is O(V+E) and walks
// the arena under its read lock; keep it off hot paths.
package cycle
