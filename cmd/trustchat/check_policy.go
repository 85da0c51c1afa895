package main

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	appPolicy "github.com/NeuralTrust/TrustChat/pkg/app/policy"
	"github.com/NeuralTrust/TrustChat/pkg/common"
	"github.com/NeuralTrust/TrustChat/pkg/infra/repository"
	"github.com/spf13/cobra"
)

func checkPolicyCmd(configPath *string) *cobra.Command {
	var (
		userID   string
		policies []string
		seedFile string
	)

	cmd := &cobra.Command{
		Use:   "check-policy [message]",
		Short: "Evaluate a message against the seed policies without starting the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closeLog, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer closeLog()

			if seedFile == "" {
				seedFile = cfg.Policies.SeedFile
			}
			seed, err := repository.LoadPolicySeed(seedFile)
			if err != nil {
				return err
			}

			checker := appPolicy.NewChecker(logger, repository.NewMemoryPolicyRepository(seed), nil)
			result := checker.Check(context.Background(), strings.Join(args, " "), userID, policies)
			if result.Failed() {
				return errors.New(result.Error)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", common.DefaultUserID, "User the message is attributed to")
	cmd.Flags().StringSliceVarP(&policies, "policy", "p", nil, "Restrict the check to these policy IDs")
	cmd.Flags().StringVar(&seedFile, "seed", "", "Policy seed file (defaults to policies.seed_file)")
	return cmd
}
