package main

import "github.com/mesalista/backend/cmd"

func main() {
	cmd.Execute()
}
