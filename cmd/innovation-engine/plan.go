// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/innovation-engine/internal/planner"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the search queries planned for an idea",
	Long: `Plan shows the market, technology, research, competitive and patent
queries that an evaluation would issue for the given title and category,
and the recommended technology stack. No network calls are made.`,
	RunE: runPlan,
}

// planOutput is the JSON form printed by plan --json.
type planOutput struct {
	planner.Plan
	RecommendedStack []string `json:"recommendedTechStack"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	category, _ := cmd.Flags().GetString("category")
	profiles, _ := cmd.Flags().GetString("profiles")
	asJSON, _ := cmd.Flags().GetBool("json")
	if strings.TrimSpace(title) == "" {
		return errors.New("title is required")
	}

	if profiles == "" {
		profiles = viper.GetString("planner.profiles_file")
	}
	table, err := planner.LoadOrDefault(profiles)
	if err != nil {
		return err
	}
	idea := types.InnovationIdea{Title: title, Category: category}
	plan, err := table.Plan(idea)
	if err != nil {
		return err
	}
	stack := table.RecommendedStack(idea)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(planOutput{Plan: plan, RecommendedStack: stack})
	}

	for _, sec := range []struct {
		name    string
		queries []string
	}{
		{"Market", plan.Market},
		{"Technology", plan.Tech},
		{"Research", plan.Research},
		{"Competitive", plan.Competitive},
		{"Patent", plan.Patent},
	} {
		fmt.Printf("%s queries:\n", sec.name)
		for _, q := range sec.queries {
			fmt.Printf("  %s\n", q)
		}
	}
	fmt.Printf("Recommended stack: %s\n", strings.Join(stack, ", "))
	return nil
}

func init() {
	planCmd.Flags().String("title", "", "idea title (required)")
	planCmd.Flags().String("category", "Technology", "idea category")
	planCmd.Flags().String("profiles", "", "profile table YAML (default: planner.profiles_file or built-in)")
	planCmd.Flags().Bool("json", false, "print the plan as JSON")

	rootCmd.AddCommand(planCmd)
}
