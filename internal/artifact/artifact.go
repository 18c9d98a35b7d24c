// Package artifact locates already-downloaded distributions in a local
// repository laid out like Maven's: group segments become directories,
// followed by the artifact id and version.
package artifact

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrInvalidCoordinates is returned for incomplete or malformed coordinates.
var ErrInvalidCoordinates = errors.New("invalid artifact coordinates")

// DefaultType is used when no packaging type is given.
const DefaultType = "tar.gz"

// Coordinates identify one file of a published artifact.
type Coordinates struct {
	GroupID    string
	ArtifactID string
	Version    string
	Type       string
	Classifier string
}

var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// PortableGit returns the coordinates of the portable Git for Windows
// distribution at version.
func PortableGit(version string) Coordinates {
	return Coordinates{
		GroupID:    "com.github.hazendaz.git",
		ArtifactID: "git-for-windows",
		Version:    version,
		Type:       DefaultType,
		Classifier: "portable",
	}
}

// Parse reads "group:artifact:version", "group:artifact:type:version" or
// "group:artifact:type:classifier:version".
func Parse(s string) (Coordinates, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")

	var c Coordinates
	switch len(parts) {
	case 3:
		c = Coordinates{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}
	case 4:
		c = Coordinates{GroupID: parts[0], ArtifactID: parts[1], Type: parts[2], Version: parts[3]}
	case 5:
		c = Coordinates{GroupID: parts[0], ArtifactID: parts[1], Type: parts[2], Classifier: parts[3], Version: parts[4]}
	default:
		return Coordinates{}, fmt.Errorf("%w: %q: expected group:artifact[:type[:classifier]]:version", ErrInvalidCoordinates, s)
	}

	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

// Validate checks that every set field is a single safe path segment and
// that group, artifact and version are present.
func (c Coordinates) Validate() error {
	required := []struct {
		field, value string
	}{
		{"group id", c.GroupID},
		{"artifact id", c.ArtifactID},
		{"version", c.Version},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidCoordinates, r.field)
		}
	}

	fields := []struct {
		field, value string
	}{
		{"group id", c.GroupID},
		{"artifact id", c.ArtifactID},
		{"version", c.Version},
		{"type", c.Type},
		{"classifier", c.Classifier},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if !segmentPattern.MatchString(f.value) || strings.Contains(f.value, "..") {
			return fmt.Errorf("%w: %s %q contains unsupported characters", ErrInvalidCoordinates, f.field, f.value)
		}
	}

	return nil
}

func (c Coordinates) packaging() string {
	if c.Type == "" {
		return DefaultType
	}
	return c.Type
}

// FileName returns "artifact-version[-classifier].type".
func (c Coordinates) FileName() string {
	name := c.ArtifactID + "-" + c.Version
	if c.Classifier != "" {
		name += "-" + c.Classifier
	}
	return name + "." + c.packaging()
}

// Dir returns the directory of the artifact relative to the repository root.
func (c Coordinates) Dir() string {
	segments := append(strings.Split(c.GroupID, "."), c.ArtifactID, c.Version)
	return filepath.Join(segments...)
}

// LocalPath returns where the artifact file lives below repoDir.
func (c Coordinates) LocalPath(repoDir string) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	return filepath.Join(repoDir, c.Dir(), c.FileName()), nil
}

// String returns "group:artifact:type[:classifier]:version".
func (c Coordinates) String() string {
	parts := []string{c.GroupID, c.ArtifactID, c.packaging()}
	if c.Classifier != "" {
		parts = append(parts, c.Classifier)
	}
	return strings.Join(append(parts, c.Version), ":")
}
