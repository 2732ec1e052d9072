package main

import (
	"os"

	"github.com/arnavsurve/domestobot/cmd/cli"
)

func main() {
	os.Exit(cli.Main())
}
