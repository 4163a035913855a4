package main

import "github.com/orlp/synth/cmd"

func main() {
	cmd.Execute()
}
