package tree

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Dump writes a table of the nodes of t, one line per slot, for debugging.
func (t *Tree) Dump(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintln(tw, "id\ttype\tparent\tfirst\tlast\tprev\tnext\tkey\tval\t")
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.Type&freed != 0 {
			fmt.Fprintf(tw, "%d\tFREED\t\t\t\t\t\t\t\t\n", i)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", i, n.Type,
			dumpID(n.Parent), dumpID(n.FirstChild), dumpID(n.LastChild),
			dumpID(n.PrevSibling), dumpID(n.NextSibling),
			t.dumpScalar(n.key, n.Type.HasKey(), n.Type.HasKeyTag(), n.Type.HasKeyAnchor()),
			t.dumpScalar(n.val, n.Type.HasVal(), n.Type.HasValTag(), n.Type.HasValAnchor()))
	}
	return tw.Flush()
}

// DumpString returns the output of Dump.
func (t *Tree) DumpString() string {
	var b strings.Builder
	t.Dump(&b)
	return b.String()
}

func dumpID(id ID) string {
	if id == None {
		return "-"
	}
	return strconv.Itoa(int(id))
}

func (t *Tree) dumpScalar(s scalar, has, tag, anchor bool) string {
	var parts []string
	if anchor {
		parts = append(parts, "&"+t.str(s.anchor))
	}
	if tag {
		parts = append(parts, t.str(s.tag))
	}
	if has {
		parts = append(parts, strconv.Quote(t.str(s.text)))
	}
	return strings.Join(parts, " ")
}
