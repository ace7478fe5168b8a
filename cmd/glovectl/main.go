package main

import (
	"github.com/robotalks/glove.go/pkg/cli"
)

//go-build: CGO_ENABLED=0

func main() {
	cli.Execute()
}
