package main

import "github.com/theirongolddev/renobudget/cmd"

func main() {
	cmd.Execute()
}
