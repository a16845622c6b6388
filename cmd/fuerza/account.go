// ABOUTME: CLI commands for accounts: register, login, logout, and profile photo.
// ABOUTME: Login records the email in the config file; passwords are never stored.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fuerza/internal/config"
	"github.com/harperreed/fuerza/internal/profile"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	password     string
	avatarPreset string
	photoFile    string
)

var registerCmd = &cobra.Command{
	Use:   "register <name> <email>",
	Short: "Create an account",
	Long: `Create an account, optionally with a profile photo.

Choose one of the preset avatars (avatar1, avatar2, avatar3) or upload a
PNG/JPEG file; an upload wins when both are given.

EXAMPLES:

  fuerza register Ana ana@example.com --password secret
  fuerza register Ana ana@example.com --password secret --avatar avatar2
  fuerza register Ana ana@example.com --password secret --photo me.jpg`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := readPassword()
		if err != nil {
			return err
		}
		choice, err := readPhotoChoice()
		if err != nil {
			return err
		}
		svc, err := authService()
		if err != nil {
			return err
		}

		u, err := svc.SignUp(cmd.Context(), args[0], args[1], pw, choice)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		color.Green("✓ Registered %s <%s>", u.Name, u.Email)
		if ref := u.PhotoRef(); ref != "" {
			fmt.Printf("  photo %s\n", color.New(color.Faint).Sprint(ref))
		}
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Check credentials and act as this user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pw, err := readPassword()
		if err != nil {
			return err
		}
		svc, err := authService()
		if err != nil {
			return err
		}

		u, err := svc.Validate(cmd.Context(), args[0], pw)
		if err != nil {
			return err
		}
		if err := config.SaveUser(config.GetConfigPath(), u.Email); err != nil {
			return fmt.Errorf("failed to save login: %w", err)
		}

		color.Green("✓ Welcome, %s", u.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the logged-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveUser(config.GetConfigPath(), ""); err != nil {
			return fmt.Errorf("failed to clear login: %w", err)
		}
		color.Green("✓ Logged out")
		return nil
	},
}

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Show or change the profile photo",
	Long: `Show the current profile photo, or change it with --avatar or --photo.

EXAMPLES:

  fuerza photo                    # Print the current photo path
  fuerza photo --avatar avatar3   # Switch to a preset
  fuerza photo --photo me.png     # Upload a new picture`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		svc := profile.NewService(repo, photoStore())

		choice, err := readPhotoChoice()
		if err != nil {
			return err
		}
		if choice.IsZero() {
			path, ok := svc.PhotoPath(u)
			if !ok {
				fmt.Println("No photo set.")
				return nil
			}
			fmt.Println(path)
			return nil
		}

		ref, err := svc.UpdatePhoto(cmd.Context(), u, choice)
		if err != nil {
			return err
		}
		color.Green("✓ Photo updated")
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(ref))
		return nil
	},
}

// readPassword takes --password, then FUERZA_PASSWORD, then stdin. A terminal
// gets an unechoed prompt; piped input is read as one line.
func readPassword() (string, error) {
	if password != "" {
		return password, nil
	}
	if env := os.Getenv("FUERZA_PASSWORD"); env != "" {
		return env, nil
	}

	fmt.Print("Password: ")
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func readPhotoChoice() (profile.Choice, error) {
	choice := profile.Choice{Preset: avatarPreset}
	if photoFile != "" {
		raw, err := os.ReadFile(photoFile)
		if err != nil {
			return choice, fmt.Errorf("failed to read photo: %w", err)
		}
		choice.Upload = raw
	}
	return choice, nil
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVarP(&password, "password", "p", "", "password (default: FUERZA_PASSWORD or prompt)")
	}
	for _, c := range []*cobra.Command{registerCmd, photoCmd} {
		c.Flags().StringVar(&avatarPreset, "avatar", "", "preset avatar: avatar1, avatar2, avatar3")
		c.Flags().StringVar(&photoFile, "photo", "", "PNG or JPEG file to upload")
	}

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(photoCmd)
}
