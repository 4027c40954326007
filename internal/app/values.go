package app

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/hosmod/hosmod/internal/debug"
	"github.com/hosmod/hosmod/internal/template/placeholder"
)

const (
	// InitialModVersion is written into a new project's manifest.
	InitialModVersion = "0.0.1"
	// SupportedGameVersion is written into a new project's manifest.
	SupportedGameVersion = "8.1.0+"
	// HarmonyIDPrefix prefixes the Harmony instance id of every mod.
	HarmonyIDPrefix = "com.hexofsteel."
)

var tokenPattern = regexp.MustCompile(`[A-Za-z0-9]+`)

// ModInfo is the user-supplied description of a new mod.
type ModInfo struct {
	Name        string
	Author      string
	Description string
}

// GUIDFunc returns a new GUID string.
type GUIDFunc func() string

// NewGUID returns an upper-case random (version 4) UUID.
func NewGUID() string {
	return strings.ToUpper(uuid.NewString())
}

// Slugify joins the alphanumeric runs of value, lower-cased, with "-".
// It returns "mod" when value has none.
func Slugify(value string) string {
	tokens := tokenPattern.FindAllString(value, -1)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}
	if slug := strings.Join(tokens, "-"); slug != "" {
		return slug
	}
	return "mod"
}

// PascalCase capitalizes each alphanumeric run of value (first letter upper,
// the rest lower) and concatenates them. It returns "ModProject" when value
// has none.
func PascalCase(value string) string {
	var b strings.Builder
	for _, t := range tokenPattern.FindAllString(value, -1) {
		b.WriteString(strings.ToUpper(t[:1]))
		b.WriteString(strings.ToLower(t[1:]))
	}
	if b.Len() == 0 {
		return "ModProject"
	}
	return b.String()
}

// BuildValues derives the substitution mapping for a new mod project.
// newGUID defaults to NewGUID.
func BuildValues(info ModInfo, newGUID GUIDFunc) placeholder.Values {
	if newGUID == nil {
		newGUID = NewGUID
	}

	projectName := PascalCase(info.Name)
	slug := Slugify(info.Name)

	values := placeholder.Values{
		"mod_name":               info.Name,
		"mod_version":            InitialModVersion,
		"mod_author":             info.Author,
		"supported_game_version": SupportedGameVersion,
		"mod_description":        info.Description,
		"project_name":           projectName,
		"project_filename":       projectName + ".csproj",
		"solution_filename":      projectName + ".sln",
		"project_guid":           newGUID(),
		"solution_guid":          newGUID(),
		"mod_class_name":         projectName + "Mod",
		"mod_slug":               slug,
		"package_prefix":         slug,
		"mod_harmony_id":         HarmonyIDPrefix + slug,
		"output_dll_name":        projectName + ".dll",
		"mod_folder_name":        info.Name,
	}

	debug.DebugJSON("[app] Substitution values", values)
	return values
}
