package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/savekit/pkg/fixvec"
	"github.com/ssargent/savekit/pkg/savefile"
)

// partyList returns the named party list of a save file.
func partyList(f savefile.DataFile, name string) (*fixvec.Vec[uint16], error) {
	s, ok := f.(*savefile.SaveFile)
	if !ok {
		return nil, fmt.Errorf("a %s file has no party", f.Kind())
	}
	switch name {
	case "roster":
		return &s.Data.Party.Roster, nil
	case "reserve":
		return &s.Data.Party.Reserve, nil
	}
	return nil, fmt.Errorf("unknown list %q", name)
}

func listCommand(name string) *cobra.Command {
	c := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Edit the party %s", name),
	}

	show := &cobra.Command{
		Use:   "show <file>",
		Short: fmt.Sprintf("Print the %s", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(args[0])
			if err != nil {
				return err
			}
			v, err := partyList(f, name)
			if err != nil {
				return err
			}
			cmd.Printf("%s (%d/%d): %v\n", name, v.Len(), v.Cap(), v.All())
			return nil
		},
	}

	push := &cobra.Command{
		Use:   "push <file> <character-id>",
		Short: fmt.Sprintf("Append a character to the %s", name),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(args[0])
			if err != nil {
				return err
			}
			v, err := partyList(f, name)
			if err != nil {
				return err
			}
			id, err := parseUint(args[1], 16, "character id")
			if err != nil {
				return err
			}
			if err := v.TryPush(uint16(id)); err != nil {
				return pushError(name, err)
			}
			cmd.Printf("%s (%d/%d): %v\n", name, v.Len(), v.Cap(), v.All())
			return commitFile(cmd, args[0], f)
		},
	}

	pop := &cobra.Command{
		Use:   "pop <file>",
		Short: fmt.Sprintf("Remove the last character of the %s", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(args[0])
			if err != nil {
				return err
			}
			v, err := partyList(f, name)
			if err != nil {
				return err
			}
			id, err := v.TryPop()
			if err != nil {
				return fmt.Errorf("%s is empty", name)
			}
			cmd.Printf("removed %d\n", id)
			return commitFile(cmd, args[0], f)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear <file>",
		Short: fmt.Sprintf("Empty the %s", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openFile(args[0])
			if err != nil {
				return err
			}
			v, err := partyList(f, name)
			if err != nil {
				return err
			}
			v.Clear()
			return commitFile(cmd, args[0], f)
		},
	}

	for _, sub := range []*cobra.Command{push, pop, clearCmd} {
		addDryRunFlag(sub)
	}
	c.AddCommand(show, push, pop, clearCmd)
	return c
}

func init() {
	rootCmd.AddCommand(listCommand("roster"), listCommand("reserve"))
}
