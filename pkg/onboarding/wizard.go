// Package onboarding implements the three-step seller onboarding wizard as a
// strictly linear state machine: BasicInfo → PlatformProfile → ProfileReview.
// The draft lives in memory only; it is submitted at step 2 and discarded
// when the wizard is dropped.
package onboarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/verible/verible-cli/pkg/api"
	"github.com/verible/verible-cli/pkg/platforms"
)

// Step identifies a wizard state.
type Step int

const (
	StepBasicInfo Step = iota + 1
	StepPlatformProfile
	StepProfileReview
)

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "basic-info"
	case StepPlatformProfile:
		return "platform-profile"
	case StepProfileReview:
		return "profile-review"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// ErrUnknownPlatform is the soft failure when the profile URL matches no
// known marketplace. The wizard stays on step 1; the user corrects the URL
// and retries.
var ErrUnknownPlatform = errors.New("profile URL does not match any supported marketplace")

// ErrPasswordMismatch is returned when the confirmation doesn't match.
var ErrPasswordMismatch = errors.New("passwords do not match")

// AccountCreator is the slice of the backend client the wizard needs.
type AccountCreator interface {
	CreateAccount(ctx context.Context, draft api.AccountDraft) (token string, err error)
}

// Wizard holds the onboarding draft and the current step. It is not safe for
// concurrent use; each onboarding flow owns one Wizard.
type Wizard struct {
	client AccountCreator

	step             Step
	info             BusinessInfo
	detectedPlatform string
	sessionToken     string
}

// NewWizard starts a wizard at step 1.
func NewWizard(client AccountCreator) *Wizard {
	return &Wizard{client: client, step: StepBasicInfo}
}

// Step returns the current wizard step.
func (w *Wizard) Step() Step {
	return w.step
}

// Draft returns the preserved step-1 payload and the detected platform, so a
// back navigation can re-render the form pre-filled.
func (w *Wizard) Draft() (BusinessInfo, string) {
	return w.info, w.detectedPlatform
}

// SessionToken returns the token issued at account creation, or "".
func (w *Wizard) SessionToken() string {
	return w.sessionToken
}

// SubmitBasicInfo validates the step-1 payload and auto-detects the platform
// from the profile URL. On success the wizard advances to step 2; on any
// failure it stays on step 1 and the draft keeps whatever the user typed.
func (w *Wizard) SubmitBasicInfo(info BusinessInfo) error {
	if w.step != StepBasicInfo {
		return fmt.Errorf("basic info can only be submitted from %s, wizard is at %s", StepBasicInfo, w.step)
	}

	w.info = info

	if err := ValidateBasicInfo(info); err != nil {
		return err
	}

	platform, ok := platforms.DetectFromURL(info.ProfileURL)
	if !ok {
		return ErrUnknownPlatform
	}

	w.detectedPlatform = platform
	w.step = StepPlatformProfile
	return nil
}

// Back returns from step 2 to step 1, preserving the draft so the user does
// not re-enter data. Step 3 is terminal; there is no back from review.
func (w *Wizard) Back() error {
	if w.step != StepPlatformProfile {
		return fmt.Errorf("cannot go back from %s", w.step)
	}
	w.step = StepBasicInfo
	return nil
}

// SubmitCredentials validates the password policy and creates the account.
// A backend failure keeps the wizard on step 2 with the draft intact. On
// success the wizard advances to review; when the backend issued a session
// token it is exposed via SessionToken so the caller can log in immediately.
func (w *Wizard) SubmitCredentials(ctx context.Context, password, confirm string) error {
	if w.step != StepPlatformProfile {
		return fmt.Errorf("credentials can only be submitted from %s, wizard is at %s", StepPlatformProfile, w.step)
	}

	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	token, err := w.client.CreateAccount(ctx, api.AccountDraft{
		BusinessName: w.info.BusinessName,
		Email:        w.info.Email,
		Phone:        w.info.Phone,
		ProfileURL:   w.info.ProfileURL,
		BusinessType: w.info.BusinessType,
		Description:  w.info.Description,
		Platform:     w.detectedPlatform,
		Password:     password,
	})
	if err != nil {
		return err
	}

	w.sessionToken = token
	w.step = StepProfileReview
	return nil
}
