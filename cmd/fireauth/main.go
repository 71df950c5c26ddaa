// Command fireauth exercises the client authentication flows from the
// command line: sign-up, sign-in, email-link delivery and completion,
// password reset, and auth-state watching.
//
// Usage:
//
//	fireauth [-config fireauth.yaml] <command> [args]
//
// Commands:
//
//	signup    -email -password      create an account and sign in
//	signin    -email -password      sign in with email and password
//	send-link -email                send a sign-in link email
//	link      -email -link          complete an email-link sign-in
//	reset     -email                send a password-reset email
//	verify    -token                verify an ID token server-side
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/ayanel/fireauth"
	"github.com/ayanel/fireauth/auth"
	"github.com/ayanel/fireauth/internal/config"
	"github.com/ayanel/fireauth/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (default: environment variables)")
	email := flag.String("email", "", "Account email address")
	password := flag.String("password", "", "Account password")
	link := flag.String("link", "", "Sign-in link received by email")
	token := flag.String("token", "", "ID token to verify")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: fireauth [-config file] <signup|signin|send-link|link|reset|verify>")
	}
	command := flag.Arg(0)

	// Load .env.localdev if it exists (for local development).
	// Silently ignore if file doesn't exist (production uses real env vars).
	_ = godotenv.Load(".env.localdev")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	log.Printf("fireauth %s", version.CommitHash)

	app, err := fireauth.NewApp(ctx, &fireauth.Config{
		APIKey:          cfg.APIKey,
		ProjectID:       cfg.ProjectID,
		TenantID:        cfg.TenantID,
		CredentialsPath: cfg.Credentials,
	})
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to create auth client: %v", err)
	}

	unsubscribe := client.OnAuthStateChanged(func(u *auth.User) {
		if u == nil {
			log.Println("Auth state: signed out")
			return
		}
		log.Printf("Auth state: signed in as %s (%s)", u.Email(), u.UID())
	})
	defer unsubscribe()

	switch command {
	case "signup":
		requireFlags(map[string]string{"email": *email, "password": *password})
		cred, err := client.CreateUser(ctx, *email, *password)
		if err != nil {
			log.Fatalf("Sign-up failed: %v", err)
		}
		printCredential(cred)

	case "signin":
		requireFlags(map[string]string{"email": *email, "password": *password})
		cred, err := client.SignInWithPassword(ctx, *email, *password)
		if err != nil {
			log.Fatalf("Sign-in failed: %v", err)
		}
		printCredential(cred)

	case "send-link":
		requireFlags(map[string]string{"email": *email})
		if cfg.ContinueURL == "" {
			log.Fatal("continue_url is required to send a sign-in link")
		}
		settings := &auth.ActionCodeSettings{
			URL:             cfg.ContinueURL,
			HandleCodeInApp: auth.Bool(true),
		}
		if err := client.SendSignInLink(ctx, *email, settings); err != nil {
			log.Fatalf("Failed to send sign-in link: %v", err)
		}
		log.Printf("Sign-in link sent to %s", *email)

	case "link":
		requireFlags(map[string]string{"email": *email, "link": *link})
		if !client.IsSignInWithEmailLink(*link) {
			log.Fatal("The provided link is not a sign-in link")
		}
		cred, err := client.SignInWithEmailLink(ctx, *email, *link)
		if err != nil {
			log.Fatalf("Email-link sign-in failed: %v", err)
		}
		printCredential(cred)

	case "reset":
		requireFlags(map[string]string{"email": *email})
		if err := client.SendPasswordResetEmail(ctx, *email, nil); err != nil {
			log.Fatalf("Failed to send password-reset email: %v", err)
		}
		log.Printf("Password-reset email sent to %s", *email)

	case "verify":
		requireFlags(map[string]string{"token": *token})
		verifier, err := app.IDVerifier(ctx)
		if err != nil {
			log.Fatalf("Failed to create verifier: %v", err)
		}
		claims, err := verifier.VerifyIDToken(ctx, *token)
		if err != nil {
			log.Fatalf("Token verification failed: %v", err)
		}
		log.Printf("Token verified: uid=%s email=%s provider=%s", claims.UID, claims.Email, claims.ProviderID)

	default:
		log.Fatalf("Unknown command: %q", command)
	}
}

func requireFlags(flags map[string]string) {
	for name, value := range flags {
		if value == "" {
			log.Fatalf("-%s is required", name)
		}
	}
}

func printCredential(cred *auth.UserCredential) {
	user := cred.User()
	log.Printf("Signed in: uid=%s email=%s provider=%s operation=%s",
		user.UID(), user.Email(), cred.ProviderID(), cred.OperationType())
	if !user.ExpiresAt().IsZero() {
		log.Printf("ID token expires at %s", user.ExpiresAt().Format("2006-01-02 15:04:05"))
	}
	// The ID token goes to stdout so it can be piped into `fireauth verify -token ...`.
	fmt.Println(user.IDToken())
}
