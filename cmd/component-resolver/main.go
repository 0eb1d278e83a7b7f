package main

import "github.com/petrarca/component-resolver/internal/cmd"

func main() {
	cmd.Execute()
}
