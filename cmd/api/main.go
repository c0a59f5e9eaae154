package main

import "snippetapi/cmd/api/commands"

func main() {
	commands.Execute()
}
