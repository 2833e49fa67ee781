package main

import "github.com/theirongolddev/spendlog/cmd"

func main() {
	cmd.Execute()
}
