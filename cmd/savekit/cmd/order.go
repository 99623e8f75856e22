package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ssargent/savekit/pkg/chrono"
	"github.com/ssargent/savekit/pkg/savefile"
)

// unlockOrder is an order whose IDs may include slots holding nothing.
type unlockOrder struct {
	chrono.Order
	vacant func(id int) bool
}

func (o unlockOrder) isVacant(id int) bool {
	return o.vacant != nil && o.vacant(id)
}

// ranked lists the registered IDs, most recent first, without vacant slots.
func (o unlockOrder) ranked() []int {
	var ids []int
	for _, id := range chrono.Ranked(o.Order) {
		if !o.isVacant(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// lookupOrder returns a named unlock order. Class orders belong to one
// character, picked with --character.
func lookupOrder(cmd *cobra.Command, f savefile.DataFile, name string) (unlockOrder, error) {
	switch f := f.(type) {
	case *savefile.SaveFile:
		switch name {
		case "bestiary":
			return unlockOrder{Order: f.Data.Progress.BestiaryOrder()}, nil
		case "inventory":
			inv := &f.Data.Inventory
			return unlockOrder{Order: inv.Order(), vacant: func(id int) bool { return !inv.Occupied(id) }}, nil
		case "classes":
			id, _ := cmd.Flags().GetUint16("character")
			c, ok := f.Data.Character(id)
			if !ok {
				return unlockOrder{}, fmt.Errorf("no character with id %d", id)
			}
			return unlockOrder{Order: c.ClassOrder()}, nil
		}
	case *savefile.SystemFile:
		if name == "gallery" {
			return unlockOrder{Order: f.Data.GalleryOrder()}, nil
		}
	}
	return unlockOrder{}, fmt.Errorf("no order %q in a %s file", name, f.Kind())
}

func parseID(o unlockOrder, s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if first, end := o.Range(); id < first || id >= end {
		return 0, fmt.Errorf("id %d out of range [%d, %d)", id, first, end)
	}
	if o.isVacant(id) {
		return 0, fmt.Errorf("slot %d is empty", id)
	}
	return id, nil
}

// orderCmd represents the order command
var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Inspect and edit unlock orders",
	Long: `Inspect and edit the order in which things were unlocked.

Save files have the orders bestiary, inventory and classes (with
--character). System files have gallery.`,
}

var orderShowCmd = &cobra.Command{
	Use:   "show <file> <order>",
	Short: "Print unlocked IDs, most recent first",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := openFile(args[0])
		if err != nil {
			return err
		}
		o, err := lookupOrder(cmd, f, args[1])
		if err != nil {
			return err
		}
		for rank, id := range o.ranked() {
			cmd.Printf("%4d  id %4d  key %d\n", rank+1, id, o.Key(id))
		}
		return nil
	},
}

var orderTouchCmd = &cobra.Command{
	Use:   "touch <file> <order> <id>",
	Short: "Mark an ID as the most recent unlock",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := openFile(args[0])
		if err != nil {
			return err
		}
		o, err := lookupOrder(cmd, f, args[1])
		if err != nil {
			return err
		}
		id, err := parseID(o, args[2])
		if err != nil {
			return err
		}
		o.Insert(id)
		cmd.Printf("%s %d: key %d\n", args[1], id, o.Key(id))
		return commitFile(cmd, args[0], f)
	},
}

var orderSwapCmd = &cobra.Command{
	Use:   "swap <file> <order> <id> <id>",
	Short: "Exchange the positions of two IDs",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := openFile(args[0])
		if err != nil {
			return err
		}
		o, err := lookupOrder(cmd, f, args[1])
		if err != nil {
			return err
		}
		a, err := parseID(o, args[2])
		if err != nil {
			return err
		}
		b, err := parseID(o, args[3])
		if err != nil {
			return err
		}
		o.Swap(a, b)
		return commitFile(cmd, args[0], f)
	},
}

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.AddCommand(orderShowCmd, orderTouchCmd, orderSwapCmd)
	orderCmd.PersistentFlags().Uint16("character", 0, "Character ID for the classes order")
	addDryRunFlag(orderTouchCmd)
	addDryRunFlag(orderSwapCmd)
}
