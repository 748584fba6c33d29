package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"menu_projection_system/internal/authz"
	"menu_projection_system/internal/projection"
)

var checkCmd = &cobra.Command{
	Use:     "check [username] [code]",
	Short:   "確認使用者是否具有某個權限項目",
	Example: "menuproj check ops_wang order:view",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, code := args[0], args[1]

		session, src, cleanup, err := newSession()
		if err != nil {
			return err
		}
		defer cleanup()

		// 超級使用者不經策略比對，與選單投影的行為一致
		if session.IsSuper(username) {
			fmt.Printf("granted\t%s\t%s\n", username, code)
			return nil
		}

		ctx := cmd.Context()
		items, err := src.FetchPermissionItems(ctx)
		if err != nil {
			return err
		}
		endpoints, err := src.FetchEndpoints(ctx)
		if err != nil {
			return err
		}

		var target *authz.PermissionItem
		for i := range items {
			if items[i].Code == code {
				target = &items[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("查無權限項目: %s", code)
		}

		policies := projection.MergedPolicies(ctx, src, username)
		if authz.Granted(*target, authz.EndpointIndex(endpoints), policies) {
			fmt.Printf("granted\t%s\t%s\n", username, code)
		} else {
			fmt.Printf("denied\t%s\t%s\n", username, code)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
