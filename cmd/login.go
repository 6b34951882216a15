package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loginCmd exchanges credentials for a session token and stores it in the
// config file so later commands pick it up automatically.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to an existing Verible account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		in := bufio.NewScanner(os.Stdin)
		if email == "" {
			fmt.Print("Email: ")
			if in.Scan() {
				email = strings.TrimSpace(in.Text())
			}
		}
		if password == "" {
			fmt.Print("Password: ")
			if in.Scan() {
				password = strings.TrimSpace(in.Text())
			}
		}
		if email == "" || password == "" {
			return fmt.Errorf("email and password are required")
		}

		client := newAPIClient()
		token, err := client.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		viper.Set("api.token", token)
		if err := viper.WriteConfig(); err != nil {
			return fmt.Errorf("logged in, but could not persist the token: %w", err)
		}
		fmt.Println("Logged in.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("email", "e", "", "Account email")
	loginCmd.Flags().StringP("password", "p", "", "Account password (prompted when omitted)")
}
