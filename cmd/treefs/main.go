package main

import "github.com/aweris/treefs/cmd/treefs/cmd"

func main() {
	cmd.Execute()
}
