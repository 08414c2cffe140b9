package main

import (
	"github.com/pinky3d/pinkyd/cmd"
)

func main() {
	cmd.Execute()
}
