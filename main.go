package main

import (
	"github.com/verible/verible-cli/cmd"
)

func main() {
	cmd.Execute()
}
