package main

import "fboard/cmd/fboard/commands"

func main() {
	commands.Execute()
}
