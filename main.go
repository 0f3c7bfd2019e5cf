package main

import "github.com/truemediaorg/reelrelay/cmd"

func main() {
	cmd.Execute()
}
