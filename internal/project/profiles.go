package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/WireCut/internal/model"
)

// DefaultProfilesPath returns the file holding user-defined controller profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.GCodeProfile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.GCodeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.GCodeProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.GCodeProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}
	for i, p := range profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("profile %d has no name", i+1)
		}
	}
	return profiles, nil
}

// ResolveProfile looks a profile up among the custom ones first, then the
// built-ins. Unknown names resolve to the Generic profile.
func ResolveProfile(name string, custom []model.GCodeProfile) model.GCodeProfile {
	for _, p := range custom {
		if p.Name == name {
			return p
		}
	}
	return model.GetProfile(name)
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.GCodeProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.GCodeProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.GCodeProfile{}, err
	}

	var profile model.GCodeProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.GCodeProfile{}, err
	}
	if profile.Name == "" {
		return model.GCodeProfile{}, errors.New("imported profile has no name")
	}
	return profile, nil
}

// UpsertCustomProfile stores p in the custom list, replacing the entry
// named previous (or p.Name when previous is empty). Built-in names are
// reserved and names must stay unique.
func UpsertCustomProfile(profiles []model.GCodeProfile, p model.GCodeProfile, previous string) ([]model.GCodeProfile, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return profiles, errors.New("profile name cannot be empty")
	}
	if model.IsBuiltInProfile(p.Name) {
		return profiles, fmt.Errorf("%q is a built-in profile name", p.Name)
	}
	if previous == "" {
		previous = p.Name
	}

	out := make([]model.GCodeProfile, 0, len(profiles)+1)
	replaced := false
	for _, existing := range profiles {
		switch existing.Name {
		case previous:
			out = append(out, p)
			replaced = true
		case p.Name:
			return profiles, fmt.Errorf("a profile named %q already exists", p.Name)
		default:
			out = append(out, existing)
		}
	}
	if !replaced {
		out = append(out, p)
	}
	return out, nil
}

// RemoveCustomProfile drops the named profile. ok is false when no
// custom profile has that name.
func RemoveCustomProfile(profiles []model.GCodeProfile, name string) (out []model.GCodeProfile, ok bool) {
	out = make([]model.GCodeProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.Name == name {
			ok = true
			continue
		}
		out = append(out, p)
	}
	return out, ok
}
