package main

import "github.com/theirongolddev/cashpilot/cmd"

func main() {
	cmd.Execute()
}
