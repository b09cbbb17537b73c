package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	billscmd "jharlow/monzo-budget/cmd/bills"
	"jharlow/monzo-budget/cmd/override"
	"jharlow/monzo-budget/cmd/process"
	"jharlow/monzo-budget/cmd/root"
	"jharlow/monzo-budget/cmd/spend"
)

func init() {
	loadEnvSilently()

	root.Init()

	root.Cmd.AddCommand(process.Cmd)
	root.Cmd.AddCommand(billscmd.Cmd)
	root.Cmd.AddCommand(spend.Cmd)
	root.Cmd.AddCommand(override.Cmd)
}

// loadEnvSilently loads environment variables from a .env file if one
// exists, before any logging is configured.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}

	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
