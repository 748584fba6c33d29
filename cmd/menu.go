package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var sidebarOnly bool

var menuCmd = &cobra.Command{
	Use:     "menu [username]",
	Short:   "列出使用者可見的選單",
	Example: "menuproj menu ops_wang",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, cleanup, err := newSession()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := session.Initialize(cmd.Context(), args[0]); err != nil {
			return err
		}

		var out interface{}
		if sidebarOnly {
			out = session.Sidebar()
		} else {
			out = session.MenuTree()
		}
		raw, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	},
}

func init() {
	menuCmd.Flags().BoolVar(&sidebarOnly, "sidebar", false, "輸出兩層側邊欄投影而非完整選單樹")
	rootCmd.AddCommand(menuCmd)
}
