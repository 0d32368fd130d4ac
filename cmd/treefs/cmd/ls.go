package cmd

import (
	"fmt"

	"github.com/aweris/treefs"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List entries",
	Long:  "List the entries of the store root or of a directory inside it.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	var (
		files []treefs.File
		path  []treefs.Name
	)
	if len(args) > 0 {
		if path, err = splitPath(args[0]); err != nil {
			return err
		}
	}
	if len(path) == 0 {
		if files, err = store.All(); err != nil {
			return err
		}
	} else {
		f, err := lookup(store, path)
		if err != nil {
			return err
		}
		if d, ok := f.(*treefs.Directory); !ok {
			files = []treefs.File{f}
		} else {
			for f, err := range d.Files() {
				if err != nil {
					return err
				}
				files = append(files, f)
			}
		}
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		fmt.Fprintf(out, "%s\t%s\t%s\n", describeSize(f), f.MediaType().Base(), displayName(f))
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "(no entries)")
	}
	return nil
}

func describeSize(f treefs.File) string {
	if d, ok := f.(*treefs.Directory); ok {
		return fmt.Sprintf("%d items", d.Len())
	}
	n, ok := f.Content().Size()
	if !ok {
		return "-"
	}
	return humanize.IBytes(uint64(n))
}

func displayName(f treefs.File) string {
	if _, ok := f.(*treefs.Directory); ok {
		return f.Name().String() + "/"
	}
	return f.Name().String()
}
