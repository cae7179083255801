package main

import "storynest/cmd/cli/command"

func main() {
	command.Execute()
}
