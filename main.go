package main

import "github.com/kiesman99/retile/cmd"

func main() {
	cmd.Execute()
}
