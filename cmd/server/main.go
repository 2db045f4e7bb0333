package main

import "github.com/eslkit/vocadeck/cmd"

func main() {
	cmd.Execute()
}
