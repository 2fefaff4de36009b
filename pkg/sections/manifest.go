package sections

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ManifestFilename is the manifest file name inside the workspace.
const ManifestFilename = "sections.yaml"

// LoadManifest reads the ordered section manifest from a YAML file.
func LoadManifest(path string) (manifest Manifest, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read section manifest: %s", path)
		return manifest, err
	}

	err = yaml.Unmarshal(data, &manifest)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse section manifest: %s", path)
		return manifest, err
	}

	err = manifest.Validate()
	if err != nil {
		err = errors.Wrap(err, "section manifest validation failed")
		return manifest, err
	}

	return manifest, err
}

// Validate checks that the manifest is well-formed.
func (m *Manifest) Validate() (err error) {
	if len(m.Sections) == 0 {
		err = errors.New("no sections defined in manifest")
		return err
	}

	seen := make(map[string]bool)
	for i, section := range m.Sections {
		if section.ID == "" {
			err = errors.Errorf("section at index %d missing id", i)
			return err
		}
		if seen[section.ID] {
			err = errors.Errorf("duplicate section id: %s", section.ID)
			return err
		}
		seen[section.ID] = true
	}

	return err
}
