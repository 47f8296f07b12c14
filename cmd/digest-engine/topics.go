// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/digest-engine/internal/store"
	"github.com/pdiddy/digest-engine/pkg/types"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Manage digest topics (list, add, enable, disable, remove, import)",
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		topics, err := st.Topics(false)
		if err != nil {
			return err
		}
		if len(topics) == 0 {
			fmt.Println("No topics configured.")
			return nil
		}

		fmt.Printf("%-4s  %-20s  %-8s  %-4s  %-8s  %s\n",
			"ID", "Name", "Priority", "Max", "Enabled", "Keywords")
		fmt.Println(strings.Repeat("-", 90))
		for _, t := range topics {
			keywords := strings.Join(t.Keywords, ", ")
			if len(keywords) > 40 {
				keywords = keywords[:37] + "..."
			}
			fmt.Printf("%-4d  %-20s  %-8d  %-4d  %-8t  %s\n",
				t.ID, t.Name, t.Priority, t.MaxArticles, t.Enabled, keywords)
		}
		return nil
	},
}

var topicsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keywords, _ := cmd.Flags().GetStringSlice("keyword")
		include, _ := cmd.Flags().GetStringSlice("include")
		exclude, _ := cmd.Flags().GetStringSlice("exclude")
		priority, _ := cmd.Flags().GetInt("priority")
		maxArticles, _ := cmd.Flags().GetInt("max-articles")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		created, err := st.CreateTopic(types.Topic{
			Name:            args[0],
			Keywords:        keywords,
			IncludePatterns: include,
			ExcludePatterns: exclude,
			Priority:        priority,
			MaxArticles:     maxArticles,
			Enabled:         true,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added topic %d: %s\n", created.ID, created.Name)
		return nil
	},
}

var topicsEnableCmd = &cobra.Command{
	Use:   "enable [id]",
	Short: "Enable a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setTopicEnabled(args[0], true) },
}

var topicsDisableCmd = &cobra.Command{
	Use:   "disable [id]",
	Short: "Disable a topic without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setTopicEnabled(args[0], false) },
}

var topicsRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Delete a topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid topic id %q", args[0])
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		deleted, err := st.DeleteTopic(id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("topic %d not found", id)
		}
		fmt.Printf("Removed topic %d\n", id)
		return nil
	},
}

var topicsImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import topics from a YAML seed file",
	Long: `Import reads a YAML file with a top-level "topics" list and creates
each entry. A topic whose name already exists is skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := readSeedFile(args[0])
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		existing, err := st.Topics(false)
		if err != nil {
			return err
		}
		byName := make(map[string]bool, len(existing))
		for _, t := range existing {
			byName[t.Name] = true
		}

		added, skipped := 0, 0
		for _, t := range seed.Topics {
			if byName[t.Name] {
				fmt.Printf("skipped %s (already exists)\n", t.Name)
				skipped++
				continue
			}
			created, err := st.CreateTopic(t)
			if err != nil {
				return fmt.Errorf("importing topic %s: %w", t.Name, err)
			}
			fmt.Printf("added   %s (id %d)\n", created.Name, created.ID)
			added++
		}
		fmt.Printf("\n%d added, %d skipped\n", added, skipped)
		return nil
	},
}

func setTopicEnabled(rawID string, enabled bool) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid topic id %q", rawID)
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	updated, err := st.UpdateTopic(id, store.TopicUpdate{Enabled: &enabled})
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("topic %d not found", id)
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Printf("Topic %d (%s) %s\n", updated.ID, updated.Name, state)
	return nil
}

func init() {
	topicsAddCmd.Flags().StringSlice("keyword", nil, "keyword to match (repeatable)")
	topicsAddCmd.Flags().StringSlice("include", nil, "include regex pattern (repeatable)")
	topicsAddCmd.Flags().StringSlice("exclude", nil, "exclude regex pattern (repeatable)")
	topicsAddCmd.Flags().Int("priority", 0, "topic priority 0-100")
	topicsAddCmd.Flags().Int("max-articles", 10, "max articles per digest section")

	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsAddCmd)
	topicsCmd.AddCommand(topicsEnableCmd)
	topicsCmd.AddCommand(topicsDisableCmd)
	topicsCmd.AddCommand(topicsRemoveCmd)
	topicsCmd.AddCommand(topicsImportCmd)

	rootCmd.AddCommand(topicsCmd)
}
