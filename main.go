package main

import "github.com/cloudlens/tagscope/cmd"

func main() {
	cmd.Execute()
}
