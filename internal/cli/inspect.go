package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sompylasar/draft-js/internal/engine"
	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/character"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/decorator"
	"github.com/sompylasar/draft-js/internal/engine/raw"
)

func (a *app) inspectCommand() *cobra.Command {
	var scripts []string
	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the structure of a document",
		Long:  `Prints every block with its type, depth, direction, tree links, inline style and entity ranges, and the decorator ranges and style leaves a renderer would draw.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inspect(cmd.OutOrStdout(), args[0], scripts)
		},
	}
	cmd.Flags().StringArrayVarP(&scripts, "script", "s", nil, "Lua decorator strategy script (repeatable)")
	return cmd
}

func (a *app) inspect(w io.Writer, path string, scripts []string) error {
	cs, err := a.loadDocument(path)
	if err != nil {
		return err
	}
	dec, closeDec, err := a.decorator(scripts)
	if err != nil {
		return err
	}
	defer closeDec()

	opts := a.cfg.EngineOptions()
	if dec != nil {
		opts = append(opts, engine.WithDecorator(dec))
	}
	es := engine.CreateWithContent(cs, append(opts, engine.WithLogger(a.log))...)
	return writeInspection(w, es)
}

func writeInspection(w io.Writer, es *engine.EditorState) error {
	cs := es.Content()
	names, _ := es.Decorator().(*decorator.Composite)

	p := &printer{w: w}
	p.printf("document tree=%t blocks=%d\n", cs.IsTree(), cs.Blocks().Len())
	cs.Blocks().Each(func(i int, b *block.Block) bool {
		p.printf("[%d] %s %s depth=%d dir=%s %q\n", i, b.Key(), b.Type(), b.Depth(), es.DirectionMap().Get(b.Key()), b.Text())
		if cs.IsTree() {
			p.printf("    parent=%s prev=%s next=%s children=[%s]\n",
				orDash(b.ParentKey()), orDash(b.PrevSiblingKey()), orDash(b.NextSiblingKey()), strings.Join(b.ChildKeys(), " "))
		}
		if len(b.Data()) > 0 {
			p.printf("    data %s\n", formatData(b.Data()))
		}
		for _, r := range raw.StyleRanges(b) {
			p.printf("    style %s [%d,%d)\n", r.Style, r.Offset, r.Offset+r.Length)
		}
		writeEntities(p, cs, b)
		for _, r := range es.BlockTree(b.Key()) {
			if r.DecoratorKey == "" && len(r.Leaves) <= 1 {
				continue
			}
			label := "text"
			if r.DecoratorKey != "" {
				label = "decorator " + r.DecoratorKey
				if names != nil {
					label += " " + names.Name(r.DecoratorKey)
				}
			}
			p.printf("    %s [%d,%d) leaves", label, r.Start, r.End)
			for _, l := range r.Leaves {
				p.printf(" [%d,%d)", l.Start, l.End)
			}
			p.printf("\n")
		}
		return p.err == nil
	})
	return p.err
}

func writeEntities(p *printer, cs *content.State, b *block.Block) {
	b.FindEntityRanges(func(m *character.Metadata) bool { return m.Entity() != "" }, func(start, end int) {
		key := b.EntityAt(start)
		e, err := cs.Entity(key)
		if err != nil {
			p.printf("    entity %s (missing) [%d,%d)\n", key, start, end)
			return
		}
		p.printf("    entity %s %s %s [%d,%d)", key, e.Type(), e.Mutability(), start, end)
		if len(e.Data()) > 0 {
			p.printf(" %s", formatData(e.Data()))
		}
		p.printf("\n")
	})
}

func formatData[M ~map[string]any](m M) string {
	keys := slices.Sorted(maps.Keys(m))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, m[k])
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
