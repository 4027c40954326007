package main

import (
	"github.com/hosmod/hosmod/internal/cli"
)

func main() {
	cli.Execute()
}
