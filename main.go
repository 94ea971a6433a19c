package main

import "github.com/Void-n-Null/MiniCouncil/cmd"

func main() {
	cmd.Execute()
}
