package main

import "github.com/R0rt1z2/liblk/cmd"

func main() {
	cmd.Execute()
}
