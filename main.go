package main

import "github.com/iksnae/termblog/cmd"

func main() {
	cmd.Execute()
}
