package main

import "tuneful/cmd"

func main() {
	cmd.Execute()
}
