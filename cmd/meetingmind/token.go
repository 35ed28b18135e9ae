package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meetingmind/pkg/jwt"
)

var tokenName string

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Issue a gateway access token signed with JWT_SECRET",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !current.cfg.AuthEnabled() {
			return fmt.Errorf("JWT_SECRET is not set")
		}
		manager := jwt.NewManager(current.cfg.Auth.JWTSecret, current.cfg.Auth.TokenExpiry, current.cfg.Auth.Issuer)
		token, err := manager.Generate(args[0], tokenName)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "Display name embedded in the token")
	rootCmd.AddCommand(tokenCmd)
}
