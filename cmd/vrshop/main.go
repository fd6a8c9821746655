package main

import "github.com/01moynul/vrshop-golang/cmd/vrshop/commands"

func main() {
	commands.Execute()
}
