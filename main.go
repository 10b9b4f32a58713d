package main

import "github.com/deploymenttheory/go-multiboot2/cmd"

func main() {
	cmd.Execute()
}
