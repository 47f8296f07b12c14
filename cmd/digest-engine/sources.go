// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/digest-engine/internal/store"
	"github.com/pdiddy/digest-engine/pkg/types"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage news sources (list, add, enable, disable, remove, import)",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sources, err := st.Sources(false)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			fmt.Println("No sources configured.")
			return nil
		}

		fmt.Printf("%-4s  %-20s  %-7s  %-40s  %-8s  %s\n",
			"ID", "Name", "Type", "URL", "Enabled", "Last fetched")
		fmt.Println(strings.Repeat("-", 100))
		for _, s := range sources {
			url := s.URL
			if len(url) > 40 {
				url = url[:37] + "..."
			}
			fmt.Printf("%-4d  %-20s  %-7s  %-40s  %-8t  %s\n",
				s.ID, s.Name, s.Type, url, s.Enabled, formatFetched(s.LastFetched))
		}
		return nil
	},
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add [name] [type] [url]",
	Short: "Add a source (type: rss, reddit, web)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		maxItems, _ := cmd.Flags().GetInt("max-items")
		selector, _ := cmd.Flags().GetString("selector")
		sortOrder, _ := cmd.Flags().GetString("sort")
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		created, err := st.CreateSource(types.Source{
			Name:     args[0],
			Type:     types.SourceType(args[1]),
			URL:      args[2],
			Category: category,
			Config: types.SourceConfig{
				MaxItems: maxItems,
				Selector: selector,
				Sort:     sortOrder,
				Limit:    limit,
			},
			Enabled: true,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added source %d: %s\n", created.ID, created.Name)
		return nil
	},
}

var sourcesEnableCmd = &cobra.Command{
	Use:   "enable [id]",
	Short: "Enable a source",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setSourceEnabled(args[0], true) },
}

var sourcesDisableCmd = &cobra.Command{
	Use:   "disable [id]",
	Short: "Disable a source without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setSourceEnabled(args[0], false) },
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Delete a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid source id %q", args[0])
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		deleted, err := st.DeleteSource(id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("source %d not found", id)
		}
		fmt.Printf("Removed source %d\n", id)
		return nil
	},
}

// seedFile is the YAML shape accepted by the import subcommands.
type seedFile struct {
	Sources []types.Source `yaml:"sources"`
	Topics  []types.Topic  `yaml:"topics"`
}

var sourcesImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import sources from a YAML seed file",
	Long: `Import reads a YAML file with a top-level "sources" list and creates
each entry. Existing sources are left untouched; a source whose name
already exists is skipped.`,
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

		existing, err := st.Sources(false)
		if err != nil {
			return err
		}
		byName := make(map[string]bool, len(existing))
		for _, s := range existing {
			byName[s.Name] = true
		}

		added, skipped := 0, 0
		for _, s := range seed.Sources {
			if byName[s.Name] {
				fmt.Printf("skipped %s (already exists)\n", s.Name)
				skipped++
				continue
			}
			created, err := st.CreateSource(s)
			if err != nil {
				return fmt.Errorf("importing source %s: %w", s.Name, err)
			}
			fmt.Printf("added   %s (id %d)\n", created.Name, created.ID)
			added++
		}
		fmt.Printf("\n%d added, %d skipped\n", added, skipped)
		return nil
	},
}

func setSourceEnabled(rawID string, enabled bool) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid source id %q", rawID)
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	updated, err := st.UpdateSource(id, store.SourceUpdate{Enabled: &enabled})
	if err != nil {
		return err
	}
	if updated == nil {
		return fmt.Errorf("source %d not found", id)
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Printf("Source %d (%s) %s\n", updated.ID, updated.Name, state)
	return nil
}

func readSeedFile(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &seed, nil
}

// openStore opens the configured database.
func openStore() (*store.Store, error) {
	return store.Open(loadConfig().Store)
}

func init() {
	sourcesAddCmd.Flags().String("category", "general", "content category")
	sourcesAddCmd.Flags().Int("max-items", 0, "max items per fetch (0 = default)")
	sourcesAddCmd.Flags().String("selector", "", "CSS selector for web sources")
	sourcesAddCmd.Flags().String("sort", "", "Reddit listing sort: hot, new, top")
	sourcesAddCmd.Flags().Int("limit", 0, "Reddit post limit (0 = default)")

	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesEnableCmd)
	sourcesCmd.AddCommand(sourcesDisableCmd)
	sourcesCmd.AddCommand(sourcesRemoveCmd)
	sourcesCmd.AddCommand(sourcesImportCmd)

	rootCmd.AddCommand(sourcesCmd)
}
