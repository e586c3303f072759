package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ferdian3456/virdanthread/internal/config"
	"github.com/ferdian3456/virdanthread/internal/model"
	"github.com/ferdian3456/virdanthread/internal/repository"
	"github.com/ferdian3456/virdanthread/internal/util"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrationDir string
	tokenUserId  string
	tokenTTL     time.Duration
)

func newRootCmd(log *zap.Logger) *cobra.Command {
	var k *koanf.Koanf

	rootCmd := &cobra.Command{
		Use:           "threadctl",
		Short:         "Operational tasks for the comment thread service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			k = config.NewKoanf(log)
		},
	}
	rootCmd.PersistentFlags().StringVar(&migrationDir, "migrations", "db/migrations", "Directory holding the SQL migrations")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.RunMigrationUp(k.String("POSTGRES_URL"), migrationDir, log)
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back every migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.RunMigrationDown(k.String("POSTGRES_URL"), migrationDir, log)
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo users and posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, k, log)
		},
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			userId, err := uuid.Parse(tokenUserId)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}

			token, err := util.GenerateAccessToken(userId, k.String("JWT_SECRET_KEY"), tokenTTL)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), util.BearerPrefix+token)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&tokenUserId, "user", "", "User id the token vouches for")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd, seedCmd, tokenCmd)

	return rootCmd
}

var seedUsers = []string{"Kyle", "Sally"}

var seedPosts = []struct {
	Title string
	Body  string
}{
	{Title: "Post 1", Body: "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Integer eget nisi vel nulla aliquet tincidunt."},
	{Title: "Post 2", Body: "Vestibulum ante ipsum primis in faucibus orci luctus et ultrices posuere cubilia curae."},
}

func runSeed(cmd *cobra.Command, k *koanf.Koanf, log *zap.Logger) error {
	ctx := context.Background()

	pool := config.NewPostgresqlPool(k, log)
	defer pool.Close()

	userRepository := repository.NewUserRepository(log, pool)
	postRepository := repository.NewPostRepository(log, pool, nil, 0)

	for _, name := range seedUsers {
		user := model.CommentUser{Id: uuid.New(), Name: name}

		err := userRepository.Upsert(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", name, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "user %s %s\n", user.Name, user.Id)
	}

	now := time.Now().UTC()
	for i, seed := range seedPosts {
		post := model.Posts{
			Id:             uuid.New(),
			Title:          seed.Title,
			Body:           seed.Body,
			CreateDatetime: now.Add(time.Duration(i) * time.Second),
		}

		err := postRepository.Create(ctx, post)
		if err != nil {
			return fmt.Errorf("failed to seed post %q: %w", seed.Title, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "post %q %s\n", post.Title, post.Id)
	}

	return nil
}
