package main

import "github.com/pders01/spotlight/cmd"

func main() {
	cmd.Execute()
}
