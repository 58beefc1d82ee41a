package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sompylasar/draft-js/internal/engine"
	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/content"
	"github.com/sompylasar/draft-js/internal/engine/history"
	"github.com/sompylasar/draft-js/internal/engine/raw"
	"github.com/sompylasar/draft-js/internal/engine/selection"
	"github.com/sompylasar/draft-js/internal/engine/transaction"
)

// editOps lists the operations edit accepts.
var editOps = []string{"insert", "remove", "backspace", "delete", "split", "style", "unstyle", "type", "tab"}

// ErrUsage indicates inconsistent edit flags.
var ErrUsage = errors.New("invalid usage")

type editFlags struct {
	op       string
	block    string
	offset   int
	endBlock string
	end      int
	text     string
	style    string
	typ      string
	shift    bool
	output   string
}

func (a *app) editCommand() *cobra.Command {
	var f editFlags
	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Apply one edit to a document and write the result",
		Long: `Applies one operation to the selection given by --block/--offset and
--end-block/--end, then writes the raw document back to FILE, to --output,
or to stdout with --output -.

Operations: ` + strings.Join(editOps, ", ") + `.`,
		Example: `  draftctl edit doc.json --op insert --block b0 --offset 5 --text ", world"
  draftctl edit doc.json --op style --block b0 --offset 0 --end 5 --style BOLD
  draftctl edit doc.yaml --op split --block b1 --offset 3 --output -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("end") {
				f.end = -1
			}
			return a.edit(cmd, args[0], f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.op, "op", "", "Operation: "+strings.Join(editOps, "|"))
	fl.StringVar(&f.block, "block", "", "Anchor block key (default: first block)")
	fl.IntVar(&f.offset, "offset", 0, "Anchor offset in runes")
	fl.StringVar(&f.endBlock, "end-block", "", "Focus block key (default: anchor block)")
	fl.IntVar(&f.end, "end", 0, "Focus offset in runes (default: anchor offset)")
	fl.StringVar(&f.text, "text", "", "Text for insert")
	fl.StringVar(&f.style, "style", "", "Inline style for style and unstyle")
	fl.StringVar(&f.typ, "type", "", "Block type for type")
	fl.BoolVar(&f.shift, "shift", false, "Outdent instead of indent for tab")
	fl.StringVarP(&f.output, "output", "o", "", "Output path, or - for stdout (default: FILE)")
	_ = cmd.MarkFlagRequired("op")
	return cmd
}

func (a *app) edit(cmd *cobra.Command, path string, f editFlags) error {
	cs, err := a.loadDocument(path)
	if err != nil {
		return err
	}
	sel, err := f.selection(cs)
	if err != nil {
		return err
	}

	ed := engine.New(cs, append(a.cfg.EngineOptions(), engine.WithLogger(a.log))...)
	ed.Select(sel)
	if err := a.applyOp(ed, f); err != nil {
		return fmt.Errorf("%s: %w", f.op, err)
	}
	a.log.Debug("edit applied", "op", f.op, "changed", ed.Content() != cs)

	if f.output == "-" {
		format := raw.JSON
		if ff, err := raw.FormatForPath(path); err == nil {
			format = ff
		}
		data, err := raw.Marshal(ed.Content(), format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	out := f.output
	if out == "" {
		out = path
	}
	written, err := saveDocument(out, ed.Content())
	if err != nil {
		return err
	}
	a.log.Info("document written", "path", written)
	return nil
}

func (a *app) applyOp(ed *engine.Editor, f editFlags) error {
	switch f.op {
	case "insert":
		return ed.InsertText(f.text)
	case "remove":
		if ed.Selection().IsCollapsed() {
			return fmt.Errorf("remove needs a range (--end or --end-block): %w", ErrUsage)
		}
		return ed.Delete(transaction.Backward)
	case "backspace":
		return ed.Delete(transaction.Backward)
	case "delete":
		return ed.Delete(transaction.Forward)
	case "split":
		return ed.SplitBlock()
	case "style", "unstyle":
		if f.style == "" {
			return fmt.Errorf("--style is required: %w", ErrUsage)
		}
		return ed.Apply(history.ChangeInlineStyle, func(cs *content.State, sel selection.State) (*content.State, error) {
			if f.op == "unstyle" {
				return transaction.RemoveInlineStyle(cs, sel, f.style)
			}
			return transaction.ApplyInlineStyle(cs, sel, f.style)
		})
	case "type":
		if f.typ == "" {
			return fmt.Errorf("--type is required: %w", ErrUsage)
		}
		return ed.Apply(history.ChangeBlockType, func(cs *content.State, sel selection.State) (*content.State, error) {
			return transaction.SetBlockType(cs, sel, block.Type(f.typ))
		})
	case "tab":
		return ed.Tab(a.cfg.Editor.MaxDepth, f.shift)
	}
	return fmt.Errorf("unknown operation %q (want one of %s): %w", f.op, strings.Join(editOps, ", "), ErrUsage)
}

// selection resolves the selection flags against cs.
func (f editFlags) selection(cs *content.State) (selection.State, error) {
	anchorKey := f.block
	if anchorKey == "" {
		first := cs.FirstBlock()
		if first == nil {
			return selection.State{}, fmt.Errorf("document has no blocks: %w", ErrUsage)
		}
		anchorKey = first.Key()
	}
	focusKey := f.endBlock
	if focusKey == "" {
		focusKey = anchorKey
	}
	focusOffset := f.end
	if focusOffset < 0 {
		focusOffset = f.offset
		if focusKey != anchorKey {
			focusOffset = 0
		}
	}

	for _, p := range []struct {
		key    string
		offset int
	}{{anchorKey, f.offset}, {focusKey, focusOffset}} {
		b, err := cs.BlockOrErr(p.key)
		if err != nil {
			return selection.State{}, err
		}
		if p.offset < 0 || p.offset > b.Length() {
			return selection.State{}, fmt.Errorf("offset %d outside block %s of length %d: %w", p.offset, p.key, b.Length(), ErrUsage)
		}
	}
	if anchorKey == focusKey && focusOffset == f.offset {
		return selection.Collapsed(anchorKey, f.offset), nil
	}
	return selection.Range(anchorKey, f.offset, focusKey, focusOffset), nil
}
