package main

import "highlight-reel/internal/cli"

func main() {
	cli.Main()
}
