package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/aweris/treefs"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var treeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Print the tree",
	Long:  "Print the store, or a directory of it, recursively as text or YAML.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTree,
}

func init() {
	treeCmd.Flags().String("format", "text", "output format (text, yaml)")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "yaml" {
		return fmt.Errorf("unknown format %q", format)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	var files []treefs.File
	if len(args) > 0 {
		path, err := splitPath(args[0])
		if err != nil {
			return err
		}
		if len(path) > 0 {
			f, err := lookup(store, path)
			if err != nil {
				return err
			}
			files = []treefs.File{f}
		}
	}
	if files == nil {
		if files, err = store.All(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if format == "yaml" {
		node, err := yamlNode(files)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()
	}
	return printTree(out, files, 0)
}

func printTree(w io.Writer, files []treefs.File, depth int) error {
	for _, f := range files {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), displayName(f))
		d, ok := f.(*treefs.Directory)
		if !ok {
			continue
		}
		children, err := childrenOf(d)
		if err != nil {
			return err
		}
		if err := printTree(w, children, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// yamlNode maps directories to ordered mappings and files to their media
// type.
func yamlNode(files []treefs.File) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range files {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: f.Name().String()}
		d, ok := f.(*treefs.Directory)
		if !ok {
			value := &yaml.Node{Kind: yaml.ScalarNode, Value: f.MediaType().String()}
			node.Content = append(node.Content, key, value)
			continue
		}
		children, err := childrenOf(d)
		if err != nil {
			return nil, err
		}
		value, err := yamlNode(children)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

func childrenOf(d *treefs.Directory) ([]treefs.File, error) {
	var files []treefs.File
	for f, err := range d.Files() {
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
