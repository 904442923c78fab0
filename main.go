package main

import "crosscut/cmd"

func main() {
	cmd.Execute()
}
