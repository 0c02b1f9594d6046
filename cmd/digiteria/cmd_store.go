package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/config"
	"github.com/shashiranjanraj/digiteria/database/seed"
	"github.com/shashiranjanraj/digiteria/pkg/slot"
)

func openStore() (*store.Store, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	s, err := slot.Open()
	if err != nil {
		return nil, err
	}
	return store.Open(s), nil
}

// digiteria store:seed — write the seed document into an empty slot.
var storeSeedCmd = &cobra.Command{
	Use:   "store:seed",
	Short: "Initialize the document store with seed data (no-op if already populated)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		doc := st.Document()
		fmt.Printf("Store ready: %d users, %d products, %d orders\n",
			len(doc.Users), len(doc.Products), len(doc.Orders))
		return nil
	},
}

// digiteria store:reset — overwrite the slot with a fresh seed document.
var storeResetCmd = &cobra.Command{
	Use:   "store:reset",
	Short: "Discard the current document and re-seed from scratch",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		s, err := slot.Open()
		if err != nil {
			return err
		}

		payload, err := json.Marshal(seed.Document())
		if err != nil {
			return err
		}
		if err := s.Save(payload); err != nil {
			return err
		}

		fmt.Println("Store reset to seed data.")
		return nil
	},
}

// digiteria store:stats — print the aggregate marketplace numbers.
var storeStatsCmd = &cobra.Command{
	Use:   "store:stats",
	Short: "Print the aggregate marketplace stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		s := st.Stats()
		fmt.Printf("Active users:     %d\n", s.ActiveUsers)
		fmt.Printf("Products sold:    %d\n", s.ProductsSold)
		fmt.Printf("Creator earnings: $%.2f\n", s.CreatorEarnings)
		fmt.Printf("Average rating:   %.2f\n", s.AvgRating)
		return nil
	},
}

// digiteria store:export — dump the full document as JSON to stdout or a file.
var storeExportCmd = &cobra.Command{
	Use:   "store:export [file]",
	Short: "Export the full document as indented JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		payload, err := json.MarshalIndent(st.Document(), "", "  ")
		if err != nil {
			return err
		}

		if len(args) == 1 {
			if err := os.WriteFile(args[0], payload, 0o644); err != nil {
				return err
			}
			fmt.Printf("Exported %d bytes to %s\n", len(payload), args[0])
			return nil
		}

		fmt.Println(string(payload))
		return nil
	},
}
