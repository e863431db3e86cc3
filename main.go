package main

import "github.com/pm1-tools/pm1/cmd"

func main() {
	cmd.Execute()
}
