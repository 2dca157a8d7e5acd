package main

import "github.com/masmgr/filehistory/cmd"

func main() {
	cmd.Run()
}
