package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// isInteractive reports whether stdin is a terminal.
var isInteractive = func() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// askOne is survey.AskOne; tests replace it.
var askOne = survey.AskOne

// promptString asks for a value, keeping current when it is already set.
// Non-interactive sessions get an error naming flag instead.
func promptString(current *string, message, help, flag string, required bool) error {
	if *current != "" {
		return nil
	}
	if !isInteractive() {
		if required {
			return fmt.Errorf("--%s is required", flag)
		}
		return nil
	}

	prompt := &survey.Input{
		Message: message,
		Help:    help,
	}

	opts := []survey.AskOpt{}
	if required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}

	if err := askOne(prompt, current, opts...); err != nil {
		return fmt.Errorf("failed to read %s: %w", flag, err)
	}
	return nil
}

// promptModInfo fills in missing mod name and author interactively.
func promptModInfo(name, author *string) error {
	if err := promptString(name, "Mod name", "Display name; also the mod folder name in MODS.", "mod-name", true); err != nil {
		return err
	}
	return promptString(author, "Mod author", "Written to Manifest.json and AssemblyInfo.", "mod-author", true)
}
