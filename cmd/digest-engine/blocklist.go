// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var blocklistCmd = &cobra.Command{
	Use:   "blocklist",
	Short: "Manage blocked keywords (list, add, remove, scope)",
}

var blocklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blocked keywords",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		keywords, err := st.BlockedKeywords()
		if err != nil {
			return err
		}
		if len(keywords) == 0 {
			fmt.Println("No blocked keywords.")
			return nil
		}
		for _, k := range keywords {
			fmt.Printf("%-4d  %s\n", k.ID, k.Keyword)
		}

		scope, err := st.Setting("filter_scope", "title_preview")
		if err != nil {
			return err
		}
		fmt.Printf("\nFilter scope: %s\n", scope)
		return nil
	},
}

var blocklistAddCmd = &cobra.Command{
	Use:   "add [keyword]",
	Short: "Block a keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		added, err := st.AddBlockedKeyword(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Blocked %q (id %d)\n", added.Keyword, added.ID)
		return nil
	},
}

var blocklistRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Unblock a keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid keyword id %q", args[0])
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		removed, err := st.RemoveBlockedKeyword(id)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("keyword %d not found", id)
		}
		fmt.Printf("Removed keyword %d\n", id)
		return nil
	},
}

var blocklistScopeCmd = &cobra.Command{
	Use:   "scope [title_preview|full_text]",
	Short: "Show or set where blocked keywords are matched",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if len(args) == 0 {
			scope, err := st.Setting("filter_scope", "title_preview")
			if err != nil {
				return err
			}
			fmt.Println(scope)
			return nil
		}

		scope := args[0]
		if scope != "title_preview" && scope != "full_text" {
			return fmt.Errorf("invalid scope %q (want title_preview or full_text)", scope)
		}
		if err := st.SetSetting("filter_scope", scope); err != nil {
			return err
		}
		fmt.Printf("Filter scope set to %s\n", scope)
		return nil
	},
}

func init() {
	blocklistCmd.AddCommand(blocklistListCmd)
	blocklistCmd.AddCommand(blocklistAddCmd)
	blocklistCmd.AddCommand(blocklistRemoveCmd)
	blocklistCmd.AddCommand(blocklistScopeCmd)

	rootCmd.AddCommand(blocklistCmd)
}
