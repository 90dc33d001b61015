package main

import "merch-manager/cmd"

func main() {
	cmd.Execute()
}
