package cli

import "github.com/spf13/cobra"

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			v := a.build.Version
			if v == "" {
				v = "dev"
			}
			cmd.Printf("draftctl version %s\n", v)
			if a.build.Commit != "" {
				cmd.Printf("  commit: %s\n", a.build.Commit)
			}
			if a.build.Date != "" {
				cmd.Printf("  built:  %s\n", a.build.Date)
			}
		},
	}
}
