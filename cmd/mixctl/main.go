package main

import "github.com/mcoot/mixplugin-go/internal/cli"

func main() {
	cli.Execute()
}
