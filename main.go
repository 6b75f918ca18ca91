package main

import "github.com/cleverdata/asset-sync/cmd"

func main() {
	cmd.Execute()
}
