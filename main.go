package main

import "github.com/vandycarlos/tiny-lang/cmd"

func main() {
	cmd.Execute()
}
