package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/savekit/pkg/chrono"
	"github.com/ssargent/savekit/pkg/savedata"
	"github.com/ssargent/savekit/pkg/savefile"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print a summary of a save or system file",
	Long: `Decode a save or system file and print its header, party and
progress summary.

Example:
  savekit inspect slot1.sav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := openFile(args[0])
		if err != nil {
			return err
		}

		switch f := f.(type) {
		case *savefile.SaveFile:
			printSave(cmd, f.Data)
		case *savefile.SystemFile:
			printSystem(cmd, f.Data)
		}
		return nil
	},
}

func printSave(cmd *cobra.Command, s *savedata.Save) {
	h := &s.Header
	cmd.Printf("Kind:       save\n")
	cmd.Printf("Version:    %#08x\n", h.Version)
	cmd.Printf("Slot:       %d (saved %d times)\n", h.SlotIndex, h.SaveCount)
	cmd.Printf("Play time:  %s\n", (time.Duration(h.PlayTime) * time.Second).String())
	cmd.Printf("Chapter:    %d\n", h.Chapter)
	cmd.Printf("Gold:       %d\n", h.Gold)
	cmd.Printf("Saved at:   %s\n", time.Unix(int64(h.Timestamp), 0).UTC().Format(time.RFC3339))

	cmd.Printf("\nCharacters:\n")
	for i := range s.Characters {
		c := &s.Characters[i]
		cmd.Printf("  %3d  %-16s class %3d  level %3d  HP %d  MP %d\n",
			c.ID, c.DisplayName(), c.ClassID, c.Level, c.HP, c.MP)
	}

	p := &s.Party
	cmd.Printf("\nRoster (%d/%d): %v\n", p.Roster.Len(), p.Roster.Cap(), p.Roster.All())
	cmd.Printf("Leader:     %s\n", p.Leader.String())
	cmd.Printf("Reserve:    %d/%d\n", p.Reserve.Len(), p.Reserve.Cap())

	items := 0
	for i := range s.Inventory.Items {
		if !s.Inventory.Items[i].ID.IsEmpty() {
			items++
		}
	}
	cmd.Printf("Inventory:  %d/%d slots used\n", items, savedata.InventoryCap)

	pr := &s.Progress
	cmd.Printf("\nProgress:\n")
	cmd.Printf("  events     %d/%d\n", pr.EventFlags().Count(), pr.EventFlags().Len())
	cmd.Printf("  quests     %d/%d\n", pr.QuestFlags().Count(), pr.QuestFlags().Len())
	cmd.Printf("  treasures  %d/%d\n", pr.TreasureFlags().Count(), pr.TreasureFlags().Len())
	cmd.Printf("  bestiary   %d/%d\n", len(chrono.Ranked(pr.BestiaryOrder())), pr.BestiaryFlags().Len())
}

func printSystem(cmd *cobra.Command, s *savedata.System) {
	cmd.Printf("Kind:         system\n")
	cmd.Printf("Version:      %#08x\n", s.Header.Version)
	cmd.Printf("Clear count:  %d\n", s.Header.ClearCount)
	cmd.Printf("Last slot:    %d\n", s.Header.LastSlot)

	ach := s.AchievementFlags()
	cmd.Printf("Achievements: %d/%d\n", ach.Count(), ach.Len())

	heard, unlocked := 0, 0
	s.MusicFlags().Each(func(_ int, v uint32) {
		switch v {
		case savedata.TrackHeard:
			heard++
		case savedata.TrackUnlocked:
			unlocked++
		}
	})
	cmd.Printf("Music:        %d heard, %d unlocked\n", heard, unlocked)

	gallery := chrono.Ranked(s.GalleryOrder())
	cmd.Printf("Gallery:      %d/%d unlocked\n", len(gallery), savedata.GalleryCount)
	if len(gallery) > 0 {
		cmd.Printf("Most recent:  %s\n", formatIDs(gallery, 5))
	}
}

func formatIDs(ids []int, limit int) string {
	if len(ids) <= limit {
		return fmt.Sprint(ids)
	}
	return fmt.Sprintf("%v ... (%d more)", ids[:limit], len(ids)-limit)
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
