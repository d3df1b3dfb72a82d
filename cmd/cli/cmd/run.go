package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/samsim/ew-simulations/pkg/config"
	"github.com/samsim/ew-simulations/pkg/logger"
	"github.com/samsim/ew-simulations/pkg/simulation"
	"github.com/samsim/ew-simulations/pkg/utils"

	// Import scenarios to register them
	_ "github.com/samsim/ew-simulations/cmd/airdefense/scenario"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario",
	Long:  `Run a scenario interactively or with saved parameters`,
	RunE:  runScenario,
}

func init() {
	runCmd.Flags().StringP("scenario", "s", "", "scenario name to run")
}

func runScenario(cmd *cobra.Command, _ []string) error {
	simName, err := selectScenario(cmd)
	if err != nil {
		return fmt.Errorf("failed to select scenario: %w", err)
	}

	sim, err := simulation.DefaultRegistry.Get(simName)
	if err != nil {
		return fmt.Errorf("failed to get scenario: %w", err)
	}

	params, err := resolveParameters(simName)
	if err != nil {
		return fmt.Errorf("failed to get parameters: %w", err)
	}

	if err := sim.Configure(params); err != nil {
		return fmt.Errorf("failed to configure scenario: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Warn("\nReceived interrupt signal, stopping scenario...")
		err := sim.Stop()
		if err != nil {
			logger.Errorf("Failed to stop scenario: %v", err)
			return
		}
		cancel()
	}()

	logger.LogSection(fmt.Sprintf("Starting %s", sim.Name()))
	if err := sim.Run(ctx); err != nil {
		return fmt.Errorf("scenario failed: %w", err)
	}

	logger.Success("Scenario completed successfully")
	return nil
}

// resolveParameters returns the parameter set for a scenario: a saved profile
// when --profile is given, otherwise interactive prompts driven by the
// scenario's simulation.yaml definition.
func resolveParameters(simName string) (map[string]interface{}, error) {
	if profileName != "" {
		cfg, err := config.LoadProfiles()
		if err != nil {
			return nil, fmt.Errorf("failed to load profiles: %w", err)
		}
		profile := cfg.Find(profileName)
		if profile == nil {
			return nil, fmt.Errorf("profile %s not found", profileName)
		}
		if profile.Scenario != simName {
			return nil, fmt.Errorf("profile %s is for scenario %s", profileName, profile.Scenario)
		}
		return profile.Parameters, nil
	}

	simConfig, err := findScenarioConfig(simName)
	if err != nil {
		return nil, err
	}

	return utils.PromptForParameters(simConfig.Parameters)
}

// findScenarioConfig locates the simulation.yaml definition for a scenario
func findScenarioConfig(simName string) (*simulation.SimulationConfig, error) {
	simInfos, err := utils.DiscoverSimulations()
	if err != nil {
		return nil, fmt.Errorf("failed to discover scenarios: %w", err)
	}

	for _, info := range simInfos {
		if info.Config.Name == simName {
			return &info.Config, nil
		}
	}

	return nil, fmt.Errorf("scenario configuration not found for %s", simName)
}

func selectScenario(cmd *cobra.Command) (string, error) {
	// Check if scenario is specified via flag
	simName, _ := cmd.Flags().GetString("scenario")
	if simName != "" {
		return simName, nil
	}

	// Discover available scenarios
	simInfos, err := utils.DiscoverSimulations()
	if err != nil {
		return "", err
	}

	if len(simInfos) == 0 {
		return "", fmt.Errorf("no scenarios found")
	}

	// Build options for selection
	options := make([]string, len(simInfos))
	descriptions := make(map[string]string)

	for i, info := range simInfos {
		options[i] = info.Config.Name
		descriptions[info.Config.Name] = info.Config.Description
	}

	// Interactive selection
	var selected string
	prompt := &survey.Select{
		Message: "Select scenario:",
		Options: options,
		Description: func(value string, index int) string {
			return descriptions[value]
		},
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	return selected, nil
}
