package main

import "github.com/mvp-joe/apidoc/internal/cli"

func main() {
	cli.Execute()
}
