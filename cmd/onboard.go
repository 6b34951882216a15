package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/verible/verible-cli/internal/utils"
	"github.com/verible/verible-cli/pkg/onboarding"
	"github.com/verible/verible-cli/pkg/preview"
)

// onboardCmd walks a seller through the three-step account wizard.
var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create a Verible seller account",
	Long: `Interactive three-step onboarding:
  1. Business info (name, email, phone, profile URL, business type)
  2. Account password — the account is created against the backend here
  3. Review

Going back from step 2 keeps everything you typed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient()
		wizard := onboarding.NewWizard(client)
		in := bufio.NewScanner(os.Stdin)

		for wizard.Step() != onboarding.StepProfileReview {
			switch wizard.Step() {
			case onboarding.StepBasicInfo:
				if err := runBasicInfoStep(cmd, wizard, in); err != nil {
					return err
				}
			case onboarding.StepPlatformProfile:
				if err := runCredentialsStep(cmd, wizard, in); err != nil {
					return err
				}
			}
		}

		// Step 3: review. Terminal, no back.
		info, platform := wizard.Draft()
		fmt.Println("\n--- Profile review ---")
		fmt.Printf("Business: %s (%s)\n", info.BusinessName, info.BusinessType)
		fmt.Printf("Contact: %s / %s\n", info.Email, info.Phone)
		fmt.Printf("Profile: %s (detected platform: %s)\n", info.ProfileURL, platform)

		if token := wizard.SessionToken(); token != "" {
			client.SetToken(token)
			viper.Set("api.token", token)
			if err := viper.WriteConfig(); err != nil {
				utils.Log.Warnf("could not persist session token: %v", err)
			} else {
				fmt.Println("You are now logged in.")
			}
		}
		fmt.Println("Account created. Welcome to Verible!")
		return nil
	},
}

func runBasicInfoStep(cmd *cobra.Command, wizard *onboarding.Wizard, in *bufio.Scanner) error {
	draft, _ := wizard.Draft()
	fmt.Println("--- Step 1: business info ---")

	var info onboarding.BusinessInfo
	for _, f := range []struct {
		label   string
		current string
		dst     *string
	}{
		{"Business name", draft.BusinessName, &info.BusinessName},
		{"Contact email", draft.Email, &info.Email},
		{"Phone number", draft.Phone, &info.Phone},
		{"Marketplace profile URL", draft.ProfileURL, &info.ProfileURL},
		{"Business type (individual/registered_business/company)", draft.BusinessType, &info.BusinessType},
		{"Short description (optional)", draft.Description, &info.Description},
	} {
		value, err := promptDefault(in, f.label, f.current)
		if err != nil {
			return err
		}
		*f.dst = value
	}

	if err := wizard.SubmitBasicInfo(info); err != nil {
		if errors.Is(err, onboarding.ErrUnknownPlatform) {
			// Soft failure: the user corrects the URL and retries.
			fmt.Printf("Error: %v\n\n", err)
			return nil
		}
		fmt.Printf("Error: %v\n\n", err)
		return nil
	}

	_, platform := wizard.Draft()
	fmt.Printf("Detected platform: %s\n", platform)
	showProfilePreview(cmd, info.ProfileURL)
	return nil
}

func runCredentialsStep(cmd *cobra.Command, wizard *onboarding.Wizard, in *bufio.Scanner) error {
	fmt.Println("\n--- Step 2: account password ---")
	fmt.Println("(type 'back' to return to step 1; your answers are kept)")

	password, err := prompt(in, "Password")
	if err != nil {
		return err
	}
	if strings.EqualFold(password, "back") {
		return wizard.Back()
	}
	confirm, err := prompt(in, "Confirm password")
	if err != nil {
		return err
	}

	if err := wizard.SubmitCredentials(cmd.Context(), password, confirm); err != nil {
		// Stay on step 2: validation and backend failures are both retryable.
		fmt.Printf("Error: %v\n\n", err)
		return nil
	}
	return nil
}

// showProfilePreview fetches the profile page so the user can confirm the
// URL points at their shop. Failures here are informational only.
func showProfilePreview(cmd *cobra.Command, profileURL string) {
	p, err := preview.NewFetcher().Fetch(cmd.Context(), profileURL)
	if err != nil {
		utils.Log.Debugf("profile preview failed: %v", err)
		return
	}
	if p.Title != "" {
		fmt.Printf("Profile page: %s\n", p.Title)
	}
}

// errInputClosed aborts the wizard when stdin is exhausted, so a piped or
// closed input can't spin the prompt loop forever.
var errInputClosed = errors.New("input closed before onboarding finished")

func prompt(in *bufio.Scanner, label string) (string, error) {
	fmt.Printf("%s: ", label)
	if !in.Scan() {
		return "", errInputClosed
	}
	return strings.TrimSpace(in.Text()), nil
}

func promptDefault(in *bufio.Scanner, label, current string) (string, error) {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !in.Scan() {
		return "", errInputClosed
	}
	text := strings.TrimSpace(in.Text())
	if text == "" {
		return current, nil
	}
	return text, nil
}

func init() {
	rootCmd.AddCommand(onboardCmd)
}
