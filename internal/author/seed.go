package author

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSeed returns the authors a fresh store starts with.
func DefaultSeed() []*Author {
	return []*Author{
		{ID: "1", Info: PersonInfo{Name: "Indranil", Age: IntPtr(39), Gender: StringPtr("M")}},
		{ID: "2", Info: PersonInfo{Name: "Ridhaan", Age: IntPtr(5), Gender: StringPtr("M")}},
		{ID: "3", Info: PersonInfo{Name: "Somrita", Age: IntPtr(35), Gender: StringPtr("F")}},
	}
}

// seedFile is the on-disk shape of a seed file.
type seedFile struct {
	Authors []*Author `yaml:"authors"`
}

// ParseSeed decodes a YAML seed document of the form:
//
//	authors:
//	  - id: "1"
//	    info: {name: Indranil, age: 39, gender: M}
func ParseSeed(data []byte) ([]*Author, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	for i, a := range f.Authors {
		if a == nil {
			return nil, fmt.Errorf("seed entry %d is empty", i)
		}
		if a.ID == "" {
			return nil, fmt.Errorf("seed entry %d has no id", i)
		}
		if a.Info.Name == "" {
			return nil, fmt.Errorf("seed entry %d (%s) has no name", i, a.ID)
		}
		// GraphQL Int is 32-bit
		if age := a.Info.Age; age != nil && (*age > math.MaxInt32 || *age < math.MinInt32) {
			return nil, fmt.Errorf("seed entry %d (%s) has out-of-range age %d", i, a.ID, *age)
		}
	}
	if f.Authors == nil {
		f.Authors = []*Author{}
	}
	return f.Authors, nil
}

// LoadSeed reads the seed file at path. An empty path yields DefaultSeed.
func LoadSeed(path string) ([]*Author, error) {
	if path == "" {
		return DefaultSeed(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("seed file not found: %s", path)
		}
		return nil, err
	}
	return ParseSeed(data)
}

// SaveSeed writes authors to path in the format ParseSeed reads.
func SaveSeed(path string, authors []*Author) error {
	data, err := yaml.Marshal(seedFile{Authors: authors})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
