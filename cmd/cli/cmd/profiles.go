package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/samsim/ew-simulations/pkg/config"
	"github.com/samsim/ew-simulations/pkg/utils"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage saved parameter profiles",
	Long:  `Manage saved scenario parameter profiles`,
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE:  listProfiles,
}

var profilesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new profile",
	RunE:  addProfile,
}

var profilesRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a profile",
	RunE:  removeProfile,
}

func init() {
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesAddCmd)
	profilesCmd.AddCommand(profilesRemoveCmd)
}

func listProfiles(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProfiles()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	if len(cfg.Profiles) == 0 {
		fmt.Println("No profiles saved")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSCENARIO\tPARAMETERS")
	_, _ = fmt.Fprintln(w, "----\t--------\t----------")

	for _, profile := range cfg.Profiles {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", profile.Name, profile.Scenario, len(profile.Parameters))
	}

	return w.Flush()
}

func addProfile(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProfiles()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	var profile config.Profile

	// Prompt for name
	namePrompt := &survey.Input{
		Message: "Profile name:",
	}
	if err := survey.AskOne(namePrompt, &profile.Name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	// Check if name already exists
	if cfg.Find(profile.Name) != nil {
		return fmt.Errorf("profile %s already exists", profile.Name)
	}

	// Prompt for scenario
	simInfos, err := utils.DiscoverSimulations()
	if err != nil {
		return fmt.Errorf("failed to discover scenarios: %w", err)
	}
	if len(simInfos) == 0 {
		return fmt.Errorf("no scenarios found")
	}

	options := make([]string, len(simInfos))
	for i, info := range simInfos {
		options[i] = info.Config.Name
	}

	scenarioPrompt := &survey.Select{
		Message: "Scenario:",
		Options: options,
	}
	if err := survey.AskOne(scenarioPrompt, &profile.Scenario); err != nil {
		return err
	}

	// Prompt for the scenario's parameters and save them
	for _, info := range simInfos {
		if info.Config.Name == profile.Scenario {
			params, err := utils.PromptForParameters(info.Config.Parameters)
			if err != nil {
				return fmt.Errorf("failed to get parameters: %w", err)
			}
			profile.Parameters = params
			break
		}
	}

	// Add to config
	cfg.Profiles = append(cfg.Profiles, profile)

	// Save config
	if err := config.SaveProfiles(cfg); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}

	fmt.Printf("Profile %s added successfully\n", profile.Name)
	return nil
}

func removeProfile(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadProfiles()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	if len(cfg.Profiles) == 0 {
		fmt.Println("No profiles to remove")
		return nil
	}

	// Build list of profile names
	names := make([]string, len(cfg.Profiles))
	for i, profile := range cfg.Profiles {
		names[i] = profile.Name
	}

	// Prompt for selection
	var selected string
	prompt := &survey.Select{
		Message: "Select profile to remove:",
		Options: names,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return err
	}

	// Confirm removal
	var confirm bool
	confirmPrompt := &survey.Confirm{
		Message: fmt.Sprintf("Are you sure you want to remove %s?", selected),
		Default: false,
	}
	if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
		return err
	}

	if !confirm {
		fmt.Println("Removal cancelled")
		return nil
	}

	// Remove from config
	newProfiles := make([]config.Profile, 0, len(cfg.Profiles)-1)
	for _, profile := range cfg.Profiles {
		if profile.Name != selected {
			newProfiles = append(newProfiles, profile)
		}
	}
	cfg.Profiles = newProfiles

	// Save config
	if err := config.SaveProfiles(cfg); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}

	fmt.Printf("Profile %s removed successfully\n", selected)
	return nil
}
