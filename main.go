package main

import "github.com/blackwell-systems/scratchbook/cmd"

func main() {
	cmd.Execute()
}
