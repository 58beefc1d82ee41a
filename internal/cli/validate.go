package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/sompylasar/draft-js/internal/engine/block"
	"github.com/sompylasar/draft-js/internal/engine/tree"
)

func (a *app) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check that a document decodes and its tree is well formed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := a.loadDocument(args[0])
			if errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalid, err)
			}
			if cs.IsTree() {
				if err := tree.Validate(cs.Blocks()); err != nil {
					return fmt.Errorf("%w: %v", ErrInvalid, err)
				}
			}
			entities := 0
			seen := make(map[string]bool)
			cs.Blocks().Each(func(_ int, b *block.Block) bool {
				for i := range b.Length() {
					if k := b.EntityAt(i); k != "" && !seen[k] {
						seen[k] = true
						entities++
					}
				}
				return true
			})
			cmd.Printf("ok: %d blocks, %d entities, tree=%t\n", cs.Blocks().Len(), entities, cs.IsTree())
			return nil
		},
	}
}
