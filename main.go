package main

import "github.com/craigbalding/sandboxscore/cmd"

func main() {
	cmd.Execute()
}
