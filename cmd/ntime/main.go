package main

import (
	"os"

	"github.com/harrison/ntime/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
