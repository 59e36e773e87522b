package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var storeFlag string

func main() {
	root := &cobra.Command{
		Use:          "clinic-scheduler",
		Short:        "OdontoApp consultation scheduling API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&storeFlag, "store", "postgres", "entity store: postgres or memory")

	root.AddCommand(serveCmd(), migrateCmd(), remindCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
