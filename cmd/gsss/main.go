package main

import "github.com/Laisky/go-sss/cmd"

func main() {
	cmd.Execute()
}
