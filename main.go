package main

import "github.com/xvierd/daybook/cmd"

func main() {
	cmd.Execute()
}
