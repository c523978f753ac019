package main

import "github.com/Borislavv/go-lcg48/cmd"

func main() {
	cmd.Execute()
}
