// legalprompt optimizes, scores and exports SA legal prompts from the terminal.
//
// Usage:
//
//	legalprompt optimize --task "..." [--role ...] [--context ...] [--mode CRISPE] [--preset LABOUR]
//	legalprompt compare --task "..." [--modes CRISPE,CHAIN_OF_THOUGHT]
//	legalprompt export --task "..." --format markdown
//	legalprompt score --prompt "..." [--task ...]
//	legalprompt detect "employee dismissed after a strike"
//	legalprompt modes | presets | templates | search <query> | chat <message>
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
