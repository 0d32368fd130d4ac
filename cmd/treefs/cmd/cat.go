package cmd

import (
	"fmt"
	"io"

	"github.com/aweris/treefs"
	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Print file content",
	Long:  "Write the content of a file to standard output.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCat,
}

func init() {
	rootCmd.AddCommand(catCmd)
}

func runCat(cmd *cobra.Command, args []string) (err error) {
	path, err := splitPath(args[0])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	f, err := lookup(store, path)
	if err != nil {
		return err
	}
	if _, ok := f.(*treefs.Directory); ok {
		return fmt.Errorf("%s: is a directory", args[0])
	}

	content := f.Content()
	if c, ok := content.(io.Closer); ok {
		defer func() {
			if cerr := c.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}

	out := cmd.OutOrStdout()
	for chunk, err := range content.Chunks() {
		if err != nil {
			return err
		}
		if _, err := out.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}
