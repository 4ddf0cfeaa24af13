package main

import "github.com/pfrederiksen/concert-events/internal/cli"

func main() {
	cli.Execute()
}
