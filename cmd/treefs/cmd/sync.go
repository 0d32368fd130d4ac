package cmd

import (
	"fmt"

	"github.com/aweris/treefs"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync <local-dir>",
	Short: "Mirror a local directory into the store",
	Long: `Add every entry of a local directory to the store root. With --delete,
store entries missing from the local directory are removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().Bool("delete", false, "remove store entries missing locally")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	src, err := treefs.NewFilesystem(args[0], treefs.WithCaseInsensitive(false))
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}

	batch := treefs.NewLazy(store)
	files, err := src.All()
	if err != nil {
		return err
	}
	local := map[treefs.Name]bool{}
	for _, f := range files {
		local[f.Name()] = true
		if err := batch.Add(f); err != nil {
			return err
		}
	}

	if deleteMissing, _ := cmd.Flags().GetBool("delete"); deleteMissing {
		existing, err := store.All()
		if err != nil {
			return err
		}
		for _, f := range existing {
			if !local[f.Name()] {
				if err := batch.Remove(f.Name()); err != nil {
					return err
				}
			}
		}
	}

	if err := batch.Persist(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Synced %d entries from %s\n", len(files), args[0])
	return nil
}
