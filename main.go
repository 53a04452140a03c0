package main

import "weeksheet/cmd"

func main() {
	cmd.Execute()
}
