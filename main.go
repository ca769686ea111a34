package main

import "github.com/Tiliavir/commit-diary/cmd"

func main() {
	cmd.Execute()
}
