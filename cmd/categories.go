package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/wharf-watcher/internal/config"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the watched seat categories",
		Run: func(cmd *cobra.Command, args []string) {
			for _, seat := range config.SeatCategories() {
				fmt.Fprintf(os.Stdout, "key=%s label=%q service_category=%s\n",
					seat.Key, seat.Label, seat.ServiceCategory)
			}
		},
	}
}
