package main

import "plant-pal/internal/cli"

func main() {
	cli.Execute()
}
