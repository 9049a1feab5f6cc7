package main

import "github.com/VickGidi/Victory-furniture-bot/internal/commands"

func main() {
	commands.Execute()
}
