package main

import "github.com/xkazm04/goat/goat/cmd"

func main() {
	cmd.Execute()
}
