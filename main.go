package main

import (
	"github.com/bleriot/skiff/cmd"

	_ "github.com/joho/godotenv/autoload"
)

var (
	version string
	commit  string
	date    string
)

func main() {
	cmd.Execute(version, commit, date)
}
