package main

import "github.com/svgmerge/svgmerge/cmd"

func main() {
	cmd.Execute()
}
