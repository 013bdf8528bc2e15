package main

import (
	"fretebot/cmd"
)

func main() {
	cmd.Execute()
}
