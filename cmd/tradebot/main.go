package main

import "github.com/diogo/tradebot/internal/commands"

func main() {
	commands.Execute()
}
