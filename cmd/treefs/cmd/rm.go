package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Remove an entry",
	Long:  "Remove a file or directory, with everything below it, from the store.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	path, err := splitPath(args[0])
	if err != nil {
		return err
	}
	if len(path) == 0 {
		return errors.New("refusing to remove the store root")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if len(path) == 1 {
		return store.Remove(path[0])
	}

	top, err := lookupDir(store, path[:1])
	if err != nil {
		return err
	}
	next, err := removeAt(top, path[1:])
	if err != nil {
		return err
	}
	return store.Add(next)
}
