package cycle

import (
	"sort"

	"github.com/wippyai/rc-runtime/arena"
)

// Referencer is implemented by payloads that hold strong references to
// other managed objects. StrongRefs returns the refs behind the
// payload's strong edges; weak and unowned edges must not be reported,
// which is exactly what lets them break cycles.
type Referencer interface {
	StrongRefs() []arena.Ref
}

// Report summarizes one traversal of the strong-reference graph.
type Report struct {
	Leaked    []arena.Ref // live objects unreachable from the roots
	Live      int         // live objects in the arena
	Reachable int         // objects reachable from the roots
}

// Detect walks the strong-reference graph from the given roots and
// returns the refs of live objects that no root can reach: objects kept
// alive only by internal strong edges, which pure reference counting
// will never free. The result is sorted by slot.
//
// Detect is a diagnostic. It takes O(V+E) over the reachable graph and
// must never sit on a hot path.
func Detect(a *arena.Arena, roots []arena.Ref) []arena.Ref {
	return Analyze(a, roots).Leaked
}

// Analyze is Detect plus totals.
func Analyze(a *arena.Arena, roots []arena.Ref) Report {
	visited := make(map[arena.Ref]struct{})

	// Iterative DFS over strong edges.
	var stack []arena.Ref
	for _, r := range roots {
		if a.Live(r) {
			stack = append(stack, r)
		}
	}
	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[ref]; seen {
			continue
		}
		visited[ref] = struct{}{}

		value, ok := a.Value(ref)
		if !ok {
			continue
		}
		referencer, ok := value.(Referencer)
		if !ok {
			continue
		}
		for _, out := range referencer.StrongRefs() {
			if !a.Live(out) {
				continue
			}
			if _, seen := visited[out]; !seen {
				stack = append(stack, out)
			}
		}
	}

	report := Report{Reachable: len(visited)}
	a.Each(func(ref arena.Ref, _ any) bool {
		report.Live++
		if _, seen := visited[ref]; !seen {
			report.Leaked = append(report.Leaked, ref)
		}
		return true
	})

	sort.Slice(report.Leaked, func(i, j int) bool {
		return report.Leaked[i].Slot < report.Leaked[j].Slot
	})
	return report
}
