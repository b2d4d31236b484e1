package main

import "achievement-manager/cmd"

func main() {
	cmd.Execute()
}
