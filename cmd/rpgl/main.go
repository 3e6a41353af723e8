package main

import "rpglife/cmd/rpgl/root"

func main() {
	root.Execute()
}
