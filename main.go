package main

import "docman/cmd"

func main() {
	cmd.Execute()
}
