package main

import "github.com/RyanBlaney/sonido-dft/cmd"

func main() {
	cmd.Execute()
}
