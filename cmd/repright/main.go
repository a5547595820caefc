package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/h4nrul1/RepRight/internal/api"
	"github.com/h4nrul1/RepRight/internal/auth"
	"github.com/h4nrul1/RepRight/internal/config"
	"github.com/h4nrul1/RepRight/internal/domain"
	"github.com/h4nrul1/RepRight/internal/service"
	"github.com/h4nrul1/RepRight/internal/session"
	"github.com/h4nrul1/RepRight/internal/storage"
	"github.com/h4nrul1/RepRight/internal/store"
)

const usage = `RepRight — gym form tracking client

Usage:
  repright signup <email> <password>
  repright confirm <email> <code>
  repright login <email> <password>
  repright logout
  repright whoami
  repright list
  repright add <name> <category>
  repright upload <name> <category> <video.mp4>
  repright analyze <exercise-id>
  repright delete <exercise-id>
  repright templates [category]
`

func main() {
	// .env is optional; config falls back to env vars and defaults.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	var provider auth.Provider
	switch cfg.Auth.Provider {
	case "local":
		provider = auth.NewLocalProvider(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration)
	case "cognito", "":
		provider, err = auth.NewCognitoProvider(cfg.Cognito)
		if err != nil {
			log.Fatalf("FATAL: Could not initialize Cognito provider: %v", err)
		}
	default:
		log.Fatalf("FATAL: Unknown auth provider %q", cfg.Auth.Provider)
	}

	backend := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	exercises := store.NewExerciseStore(backend)
	manager := session.NewManager(provider, backend, exercises)

	ctx := context.Background()
	manager.Start(ctx)

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	if err := run(ctx, cfg, manager, exercises, backend, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config, manager *session.Manager, exercises *store.ExerciseStore, backend *api.Client, cmd string, args []string) error {
	switch cmd {
	case "signup":
		if len(args) != 2 {
			return errors.New("usage: signup <email> <password>")
		}
		if err := manager.SignUp(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Sign-up started. Check your email for the confirmation code.")
		return nil

	case "confirm":
		if len(args) != 2 {
			return errors.New("usage: confirm <email> <code>")
		}
		if err := manager.ConfirmSignUp(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Account confirmed. You can now log in.")
		return nil

	case "login":
		if len(args) != 2 {
			return errors.New("usage: login <email> <password>")
		}
		if err := manager.SignIn(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Signed in as %s\n", manager.User().Email)
		return nil

	case "logout":
		if err := manager.SignOut(ctx); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil

	case "whoami":
		user := manager.User()
		if user == nil {
			fmt.Println("Not signed in.")
			return nil
		}
		fmt.Printf("%s (%s)\n", user.Email, user.ID)
		return nil

	case "list":
		requireUser(manager)
		for _, e := range exercises.Exercises() {
			printExercise(e)
		}
		return nil

	case "add":
		requireUser(manager)
		if len(args) != 2 {
			return errors.New("usage: add <name> <category>")
		}
		created, err := exercises.Add(ctx, domain.ExerciseDraft{Name: args[0], Category: args[1]})
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (%s)\n", created.Name, created.ID)
		return nil

	case "upload":
		requireUser(manager)
		if len(args) != 3 {
			return errors.New("usage: upload <name> <category> <video.mp4>")
		}
		objects, err := storage.NewS3Storage(cfg.S3)
		if err != nil {
			return err
		}
		f, err := os.Open(args[2])
		if err != nil {
			return err
		}
		defer f.Close()

		uploads := service.NewUploadService(objects, exercises)
		created, err := uploads.UploadVideo(ctx, args[0], args[1], contentTypeFor(args[2]), f)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s (%s)\n  video: %s\n", created.Name, created.ID, created.VideoURI)
		return nil

	case "analyze":
		requireUser(manager)
		if len(args) != 1 {
			return errors.New("usage: analyze <exercise-id>")
		}
		analyzer := service.NewAnalysisService(backend, exercises)
		analysis, err := analyzer.Analyze(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Score: %d/100\n", analysis.Score)
		for _, remark := range analysis.Feedback {
			fmt.Printf("  - %s\n", remark)
		}
		for _, kp := range analysis.KeyPoints {
			fmt.Printf("  [%5.1fs] (%s) %s\n", kp.Timestamp, kp.Severity, kp.Issue)
		}
		return nil

	case "delete":
		requireUser(manager)
		if len(args) != 1 {
			return errors.New("usage: delete <exercise-id>")
		}
		if err := exercises.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil

	case "templates":
		templates := domain.Templates()
		if len(args) == 1 {
			templates = domain.TemplatesByCategory(args[0])
		}
		for _, t := range templates {
			fmt.Printf("%-24s %-10s %s\n", t.Name, t.Category, strings.Join(t.MuscleGroups, ", "))
		}
		return nil

	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// requireUser exits early when nobody is signed in; exercise commands are
// meaningless without an identity to scope them.
func requireUser(manager *session.Manager) {
	if manager.State() != session.StateAuthenticated {
		log.Fatal("Not signed in. Run: repright login <email> <password>")
	}
}

func printExercise(e domain.Exercise) {
	marker := " "
	if e.AnalysisResult != nil {
		marker = fmt.Sprintf("score %d", e.AnalysisResult.Score)
	} else if e.HasVideo() {
		marker = "video, not analyzed"
	}
	fmt.Printf("%-36s %-24s %-10s %s  %s\n",
		e.ID, e.Name, e.Category, e.CreatedAt.Format("2006-01-02"), marker)
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	default:
		return "video/mp4"
	}
}
