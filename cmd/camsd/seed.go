package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/anbuchelva/cams/internal/config"
	"github.com/anbuchelva/cams/internal/domain"
	"github.com/anbuchelva/cams/internal/repository"
	"github.com/anbuchelva/cams/internal/store"
)

var seedProjects bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the test account (and optionally sample projects)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return seed(cmd.Context())
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedProjects, "projects", false, "also insert sample projects")
}

func seed(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	st, err := store.NewXLSX(cfg.DataDir, repository.Schemas)
	if err != nil {
		return err
	}
	blobs, err := store.NewBlobStore(cfg.UploadsDir)
	if err != nil {
		return err
	}

	users := repository.NewUsers(st)
	user, err := users.Register(ctx, repository.RegisterParams{
		Name:       "Test User",
		Email:      "test@college.edu",
		Password:   "password123",
		Department: "Computer Science",
	})
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		slog.Info("test user already exists", "email", "test@college.edu")
		user, err = users.FindByEmail(ctx, "test@college.edu")
		if err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		slog.Info("test user created", "email", "test@college.edu")
	}

	if !seedProjects {
		return nil
	}

	projects := repository.NewProjects(st, blobs)
	for _, sample := range sampleProjects(user.ID) {
		p, err := projects.Create(ctx, sample)
		if err != nil {
			slog.Error("failed to insert sample project", "title", sample.Title, "error", err)
			continue
		}
		slog.Info("sample project inserted", "title", p.Title, "id", p.ID)
	}
	return nil
}

func sampleProjects(userID string) []repository.CreateParams {
	amount := func(f float64) *float64 { return &f }
	agreement := func(title string) string {
		// Placeholder reference; sample records have no real uploads.
		return "agreementDocument-sample-" + strings.ToLower(strings.ReplaceAll(title, " ", "-")) + ".pdf"
	}
	date := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}

	return []repository.CreateParams{
		{
			UserID:                  userID,
			IndustryName:            "Renewable Energy",
			Title:                   "Green Grid Optimization",
			PrincipalInvestigator:   "Dr. Anil Kumar",
			CoPrincipalInvestigator: "Dr. Neha Rao",
			AcademicYear:            "2024-2025",
			Duration:                4,
			AmountSanctioned:        amount(800000),
			AmountReceived:          amount(600000),
			BillSettlementDetails:   "Pending",
			StudentDetails:          "4 students involved",
			Summary:                 "Improving efficiency of smart grids through AI.",
			AgreementDocument:       agreement("Green Grid Optimization"),
			CreatedAt:               date("2024-12-15T00:00:00Z"),
		},
		{
			UserID:                userID,
			IndustryName:          "EdTech",
			Title:                 "AI Tutoring System",
			PrincipalInvestigator: "Prof. Sneha Verma",
			AcademicYear:          "2024-2025",
			Duration:              3,
			AmountSanctioned:      amount(300000),
			AmountReceived:        amount(300000),
			BillSettlementDetails: "Submitted",
			StudentDetails:        "2 interns",
			Summary:               "Developing AI-powered tutoring for underprivileged schools.",
			AgreementDocument:     agreement("AI Tutoring System"),
			CreatedAt:             date("2025-02-15T00:00:00Z"),
		},
		{
			UserID:                  userID,
			IndustryName:            "Healthcare AI",
			Title:                   "ER Wait Time Predictor",
			PrincipalInvestigator:   "Dr. Surya Mehta",
			CoPrincipalInvestigator: "Dr. Lakshmi Reddy",
			AcademicYear:            "2024-2025",
			Duration:                2,
			AmountSanctioned:        amount(950000),
			AmountReceived:          amount(500000),
			BillSettlementDetails:   "In process",
			StudentDetails:          "5 students",
			Summary:                 "Predicting ER congestion using ML models.",
			AgreementDocument:       agreement("ER Wait Time Predictor"),
			CreatedAt:               date("2025-03-05T00:00:00Z"),
		},
	}
}
