package main

import "mdshelf/cmd/mdshelf-cli/cmd"

func main() {
	cmd.Execute()
}
