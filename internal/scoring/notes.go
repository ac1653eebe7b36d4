package scoring

import "strings"

// noteLog accumulates clinical notes in insertion order. The first note may be set
// directly; every later note is appended with a single leading space, even when nothing
// precedes it.
type noteLog struct {
	entries []noteEntry
}

type noteEntry struct {
	text     string
	appended bool
}

func (n *noteLog) set(text string) {
	n.entries = append(n.entries[:0], noteEntry{text: text})
}

func (n *noteLog) add(text string) {
	n.entries = append(n.entries, noteEntry{text: text, appended: true})
}

func (n *noteLog) fragments() []string {
	if len(n.entries) == 0 {
		return nil
	}
	out := make([]string, 0, len(n.entries))
	for _, e := range n.entries {
		out = append(out, e.text)
	}
	return out
}

func (n *noteLog) String() string {
	var b strings.Builder
	for _, e := range n.entries {
		if e.appended {
			b.WriteByte(' ')
		}
		b.WriteString(e.text)
	}
	return b.String()
}
