package main

import (
	"os"

	"github.com/jmcampanini/git-pr/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
