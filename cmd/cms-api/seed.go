package main

import (
	"fmt"
	"log/slog"
	"time"

	"cms-api/internal/config"
	"cms-api/internal/domain/models"
	"cms-api/internal/lib/logger"
	articleservice "cms-api/internal/service/article"
	reviewservice "cms-api/internal/service/review"
	userservice "cms-api/internal/service/user"
	"cms-api/internal/storage/sqlite"

	"github.com/spf13/cobra"
)

var (
	seedEmail    string
	seedPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo user with one reviewed article",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustLoad(cfgPath)
		log := logger.New(cfg.Env)

		storage, err := sqlite.New(cfg.StoragePath)
		if err != nil {
			return err
		}
		defer storage.Close()

		ctx := cmd.Context()
		users := userservice.New(log, storage, cfg.Secret, cfg.TokenTTL)
		articles := articleservice.New(log, storage)
		reviews := reviewservice.New(log, storage)

		uid, err := users.Register(ctx, "Demo account", seedEmail, seedPassword)
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		caller := models.Caller{UserID: uid}

		artID, err := articles.Create(ctx, caller, models.ArticleInput{
			Title:       "First steps with the review board",
			Content:     "This article was created by the seed command. Log in as the demo account to edit it, or register another account and leave a review.",
			PublishDate: time.Now().Format(models.DateLayout),
		})
		if err != nil {
			return fmt.Errorf("seed article: %w", err)
		}

		for _, in := range []models.ReviewInput{
			{Rating: 5, Comment: "Great article!"},
			{Rating: 0, Comment: "Rubbish."},
		} {
			if _, err := reviews.Create(ctx, caller, artID, in); err != nil {
				return fmt.Errorf("seed review: %w", err)
			}
		}

		log.Info("seed complete", slog.Int64("user_id", uid), slog.Int64("article_id", artID))

		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedEmail, "email", "demo@example.com", "demo account email")
	seedCmd.Flags().StringVar(&seedPassword, "password", "demo", "demo account password")
	rootCmd.AddCommand(seedCmd)
}
