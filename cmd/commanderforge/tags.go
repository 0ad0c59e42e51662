package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Inspect and curate the tag vocabulary",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored tags with usage counts",
	RunE:  runTagsList,
}

var tagsMergeCmd = &cobra.Command{
	Use:   "merge <from> <to>",
	Short: "Fold one tag into another, remapping card associations",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagsMerge,
}

var tagsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a tag and its card associations",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsDelete,
}

func init() {
	tagsCmd.AddCommand(tagsListCmd, tagsMergeCmd, tagsDeleteCmd)
	rootCmd.AddCommand(tagsCmd)
}

func runTagsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tags, err := db.AvailableTags(cmd.Context())
	if err != nil {
		return err
	}
	for _, tag := range tags {
		fmt.Printf("%-40s %-22s %6d cards\n", tag.Name, tag.Category, tag.Count)
	}
	return nil
}

func runTagsMerge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.MergeTags(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("Merged %q into %q\n", args[0], args[1])
	return nil
}

func runTagsDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.DeleteTag(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted tag %q\n", args[0])
	return nil
}
