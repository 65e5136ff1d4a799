package main

import (
	"fmt"

	"github.com/creditgauge/creditgauge/internal/cli"
	"github.com/creditgauge/creditgauge/internal/common"
	"github.com/creditgauge/creditgauge/internal/service"
	"github.com/creditgauge/creditgauge/internal/verify"
	"github.com/spf13/cobra"
)

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify your identity and employment",
		Long: `Verification commands strengthen your profile. A work email matched against
known employers is pre-verified; an academic address needs your explicit
confirmation; a professional profile link is checked against accepted
platforms; and an identity check unlocks scoring on its own.`,
	}

	cmd.AddCommand(verifyEmailCmd())
	cmd.AddCommand(verifyLinkCmd())
	cmd.AddCommand(verifyIdentityCmd())

	return cmd
}

func verifyEmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email <address>",
		Short: "Verify a work or institutional email address",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerifyEmail,
	}

	cmd.Flags().Bool("confirm", false, "confirm a detected institution as your employer")

	return cmd
}

func runVerifyEmail(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	email := args[0]
	confirm, _ := cmd.Flags().GetBool("confirm")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	user, err := loadUser(ctx, store)
	if err != nil {
		return err
	}

	outcome, institution, err := verify.New().VerifyWorkEmail(ctx, email)
	if err != nil {
		return err
	}

	switch {
	case outcome.IsValid:
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Matched %s -- employment pre-verified", outcome.MatchedEntity)))

	case institution != nil && confirm:
		outcome = verify.ConfirmInstitution(institution)
		user.InstitutionName = institution.DisplayName
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Confirmed %s as your institution", institution.DisplayName)))

	case institution != nil:
		fmt.Println(cli.FormatInfo(fmt.Sprintf("This looks like an address at %s.", institution.DisplayName)))
		fmt.Println(cli.SubtleStyle.Render("  We could not verify it automatically. If this is where you work or"))
		fmt.Println(cli.SubtleStyle.Render("  study, re-run with --confirm to attach it to your profile."))
		// Detection without confirmation records the attempt, nothing more.

	default:
		fmt.Println(cli.FormatWarning("We couldn't match that address to a known employer."))
		fmt.Println(cli.SubtleStyle.Render("  A personal mailbox can't verify employment. Try your work address,"))
		fmt.Println(cli.SubtleStyle.Render("  or use 'cg verify link' with a professional profile instead."))
	}

	user.WorkEmail = email
	user.Employment = outcome
	if err := store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return showRecomputed(cmd, store)
}

func verifyLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <url>",
		Short: "Verify a professional profile link",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerifyLink,
	}
}

func runVerifyLink(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	link := args[0]

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	user, err := loadUser(ctx, store)
	if err != nil {
		return err
	}

	outcome, err := verify.New().VerifyProfileLink(ctx, link)
	if err != nil {
		return err
	}
	if !outcome.IsValid {
		fmt.Println(cli.FormatWarning("That link isn't on a platform we accept."))
		fmt.Println(cli.SubtleStyle.Render("  " + verify.PlatformGuidance()))
		return common.NewUserError(verify.PlatformGuidance(), common.ErrUnknownPlatform)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Matched %s -- profile verified", outcome.MatchedEntity)))

	user.ProfileLink = link
	user.Employment = outcome
	if err := store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return showRecomputed(cmd, store)
}

func verifyIdentityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identity",
		Short: "Run an identity check",
		Long: `Runs the selfie-capture identity check. A failed check can simply be
retried; it never marks your profile negatively.`,
		RunE: runVerifyIdentity,
	}
}

func runVerifyIdentity(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	user, err := loadUser(ctx, store)
	if err != nil {
		return err
	}

	if user.IdentityVerified {
		fmt.Println(cli.FormatInfo("Your identity is already verified."))
		return nil
	}

	fmt.Println(cli.FormatInfo("Checking identity..."))
	ok, err := verify.NewIdentityChecker().Check(ctx)
	if err != nil {
		return err
	}

	if !ok {
		fmt.Println(cli.FormatWarning("Identity check failed. Nothing was recorded; try again."))
		return nil
	}

	user.IdentityVerified = true
	if err := store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Identity verified " + cli.ShieldIcon))
	return showRecomputed(cmd, store)
}

// showRecomputed recomputes the profile after a verification change and
// prints either the fresh profile or what is still missing.
func showRecomputed(cmd *cobra.Command, store service.Storage) error {
	result, err := recomputeProfile(cmd.Context(), store)
	if err != nil {
		return err
	}

	if result.Incomplete {
		fmt.Println(cli.FormatInfo("Still needed before a score can be computed:"))
		for _, item := range result.Missing {
			fmt.Println(cli.SubtleStyle.Render("  • " + item))
		}
		return nil
	}

	printProfile(result)
	return nil
}
