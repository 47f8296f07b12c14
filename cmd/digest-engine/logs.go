// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent digest runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		logs, err := st.DigestLogs(limit)
		if err != nil {
			return err
		}
		if len(logs) == 0 {
			fmt.Println("No digest runs recorded.")
			return nil
		}

		fmt.Printf("%-4s  %-20s  %-12s  %-7s  %s\n", "ID", "Sent at", "Status", "Entries", "Error")
		fmt.Println(strings.Repeat("-", 70))
		for _, l := range logs {
			errMsg := l.Error
			if len(errMsg) > 40 {
				errMsg = errMsg[:37] + "..."
			}
			fmt.Printf("%-4d  %-20s  %-12s  %-7d  %s\n",
				l.ID, l.SentAt.Format("2006-01-02 15:04:05"), l.Status, l.EntryCount, errMsg)
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().Int("limit", 10, "max runs to show")
	rootCmd.AddCommand(logsCmd)
}
