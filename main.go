package main

import "github.com/mouse-blink/simwright/cmd"

func main() {
	cmd.Execute()
}
