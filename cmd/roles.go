package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:     "roles [username]",
	Short:   "列出使用者繼承的角色",
	Example: "menuproj roles ops_wang",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, src, cleanup, err := newSession()
		if err != nil {
			return err
		}
		defer cleanup()

		roles, err := src.FetchUserRoles(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(roles) == 0 {
			fmt.Println("(無角色)")
			return nil
		}
		for _, role := range roles {
			fmt.Println(role)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}
