package main

import "ygo-pipelines/cmd"

func main() {
	cmd.Execute()
}
