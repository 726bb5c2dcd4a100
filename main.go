package main

import "github.com/zjrosen/jig/cmd"

func main() {
	cmd.Execute()
}
