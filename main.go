package main

import (
	"os"

	"github.com/danpilch/ifstat/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
