package main

import "github.com/diffsec/catapult/cmd"

func main() {
	cmd.Execute()
}
