package main

import "resource-sync/cmd"

func main() {
	cmd.Execute()
}
