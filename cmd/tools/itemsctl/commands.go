package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/items-api/backend/internal/model/item"
	"github.com/zhouzirui/items-api/backend/internal/service/events"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := newClient(opts.addr).List(cmd.Context())
			if err != nil {
				return err
			}
			return newPrinter(cmd.OutOrStdout(), opts.jsonMode).items(list)
		},
	}
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := newClient(opts.addr).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return newPrinter(cmd.OutOrStdout(), opts.jsonMode).item("", it)
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <price>",
		Short: "Add a new item",
		Long: `Add a new item. Names must be unique.

Examples:
  itemsctl add popsicle 1.45`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := parsePrice(args[1])
			if err != nil {
				return err
			}
			name := args[0]
			it, err := newClient(opts.addr).Add(cmd.Context(), item.CreateInput{Name: &name, Price: &price})
			if err != nil {
				return err
			}
			return newPrinter(cmd.OutOrStdout(), opts.jsonMode).item("added", it)
		},
	}
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var (
		newName  string
		newPrice string
	)

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Rename an item or change its price",
		Long: `Change the name and/or price of an item. Fields not given are left untouched.

Examples:
  itemsctl update popsicle --name "new popsicle"
  itemsctl update popsicle --price 2.45`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in item.UpdateInput
			if cmd.Flags().Changed("name") {
				in.Name = &newName
			}
			if cmd.Flags().Changed("price") {
				price, err := parsePrice(newPrice)
				if err != nil {
					return err
				}
				in.Price = &price
			}
			if in.Name == nil && in.Price == nil {
				return fmt.Errorf("nothing to update: pass --name and/or --price")
			}

			it, err := newClient(opts.addr).Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			return newPrinter(cmd.OutOrStdout(), opts.jsonMode).item("updated", it)
		},
	}
	cmd.Flags().StringVar(&newName, "name", "", "new item name")
	cmd.Flags().StringVar(&newPrice, "price", "", "new item price")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := newClient(opts.addr).Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return newPrinter(cmd.OutOrStdout(), opts.jsonMode).message(msg)
		},
	}
}

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print item changes as they happen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p := newPrinter(cmd.OutOrStdout(), opts.jsonMode)
			return newClient(opts.addr).Watch(ctx, func(ev events.Event) error {
				return p.event(ev)
			})
		},
	}
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	return price, nil
}
