package main

import "neovideo/cmd/admin/cmd"

func main() {
	cmd.Execute()
}
