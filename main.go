package main

import "github.com/hmans/authors/cmd"

func main() {
	cmd.Execute()
}
