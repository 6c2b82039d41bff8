package main

import "github.com/mvp-joe/code-skeleton/internal/cli"

func main() {
	cli.Execute()
}
