package main

import "github.com/mcoot/dartscore-go/internal/cli"

func main() {
	cli.Execute()
}
