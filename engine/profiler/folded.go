package profiler

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

type event struct {
	atNS  int64
	frame string
	open  bool
}

// fold turns an ordered open/close event stream into per-stack self times,
// in nanoseconds. Mismatched closes are skipped; scopes still open at the
// end are closed at the last timestamp.
func fold(evs []event) map[string]int64 {
	type open struct {
		frame string
		atNS  int64
		child int64
	}
	out := map[string]int64{}
	var stack []open
	var last int64

	closeTop := func(at int64) {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total := at - top.atNS
		if total < 0 {
			total = 0
		}
		names := make([]string, 0, len(stack)+1)
		for _, o := range stack {
			names = append(names, o.frame)
		}
		names = append(names, top.frame)
		self := total - top.child
		if self < 0 {
			self = 0
		}
		out[strings.Join(names, ";")] += self
		if len(stack) > 0 {
			stack[len(stack)-1].child += total
		}
	}

	for _, e := range evs {
		if e.atNS < last {
			e.atNS = last
		}
		last = e.atNS
		if e.open {
			stack = append(stack, open{frame: e.frame, atNS: e.atNS})
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1].frame != e.frame {
			continue
		}
		closeTop(e.atNS)
	}
	for len(stack) > 0 {
		closeTop(last)
	}
	return out
}

// writeFolded writes one "a;b;c <microseconds>" line per stack, sorted.
func writeFolded(w io.Writer, folded map[string]int64) error {
	keys := make([]string, 0, len(folded))
	for k := range folded {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s %d\n", k, folded[k]/1000); err != nil {
			return err
		}
	}
	return nil
}
