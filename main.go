package main

import "github.com/agubarev/warden/cmd"

func main() {
	cmd.Execute()
}
