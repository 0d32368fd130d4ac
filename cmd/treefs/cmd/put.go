package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/aweris/treefs"
	"github.com/spf13/cobra"
)

var putCmd = &cobra.Command{
	Use:   "put <local> [dir]",
	Short: "Import a local file or directory",
	Long: `Copy a local file or directory into the store, at the root or into an
existing directory of the store.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPut,
}

func init() {
	putCmd.Flags().String("as", "", "store under a different name")
	rootCmd.AddCommand(putCmd)
}

func runPut(cmd *cobra.Command, args []string) error {
	local, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	src, err := treefs.NewFilesystem(filepath.Dir(local), treefs.WithCaseInsensitive(false))
	if err != nil {
		return err
	}
	name, err := treefs.NewName(filepath.Base(local))
	if err != nil {
		return err
	}
	f, ok := src.Get(name)
	if !ok {
		return fmt.Errorf("%s: %w", args[0], errNotFound)
	}
	if as, _ := cmd.Flags().GetString("as"); as != "" {
		n, err := treefs.NewName(as)
		if err != nil {
			return err
		}
		f = treefs.Rename(f, n)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	var dest []treefs.Name
	if len(args) > 1 {
		if dest, err = splitPath(args[1]); err != nil {
			return err
		}
	}
	if len(dest) == 0 {
		return store.Add(f)
	}

	top, err := lookupDir(store, dest[:1])
	if err != nil {
		return err
	}
	next, err := top.ReplaceAt(dest[1:], f)
	if err != nil {
		return err
	}
	return store.Add(next)
}
