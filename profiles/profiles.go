// Package profiles holds predefined codec settings for common kinds of bit
// vector.
package profiles

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/dargueta/bvcodec"
	"github.com/dargueta/bvcodec/utilities/compression"
	"github.com/gocarina/gocsv"
)

// DefaultSlug names the profile used when none is given.
const DefaultSlug = "default"

type Profile struct {
	Slug string `csv:"slug"`
	Name string `csv:"name"`

	// MaxInputSize is the largest uncompressed bit vector, in bytes.
	MaxInputSize int `csv:"max_input_size"`

	// Compressor names the general-purpose compressor used for comparisons and
	// for vectors too dense to Golomb-encode. See [compression.Lookup].
	Compressor string `csv:"codec"`
	Level      int    `csv:"level"`
	Notes      string `csv:"notes"`
}

// Options returns the codec options for the profile.
func (p Profile) Options() bvcodec.Options {
	return bvcodec.Options{MaxInputSize: p.MaxInputSize}
}

func (p Profile) GetCompressor() (compression.Compressor, error) {
	return compression.Lookup(p.Compressor)
}

////////////////////////////////////////////////////////////////////////////////

//go:embed profiles.csv
var profilesRawCSV string
var profiles map[string]Profile

// Get returns the profile with the given slug.
func Get(slug string) (Profile, error) {
	profile, ok := profiles[slug]
	if ok {
		return profile, nil
	}

	return Profile{}, bvcodec.ErrInvalidArgument.WithMessage(
		fmt.Sprintf("no predefined profile exists with slug %q", slug))
}

// All returns every predefined profile, sorted by slug.
func All() []Profile {
	all := make([]Profile, 0, len(profiles))
	for _, profile := range profiles {
		all = append(all, profile)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Slug < all[j].Slug })
	return all
}

func loadProfiles(rawCSV string) (map[string]Profile, error) {
	csvReader := csv.NewReader(strings.NewReader(rawCSV))
	csvReader.Comma = '|'

	var rows []Profile
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}

	loaded := make(map[string]Profile, len(rows))
	for i, row := range rows {
		if _, exists := loaded[row.Slug]; exists {
			return nil, fmt.Errorf(
				"duplicate definition for profile %q found on row %d", row.Slug, i+1)
		}
		if err := row.Options().Validate(); err != nil {
			return nil, fmt.Errorf("profile %q on row %d: %w", row.Slug, i+1, err)
		}
		if _, err := row.GetCompressor(); err != nil {
			return nil, fmt.Errorf("profile %q on row %d: %w", row.Slug, i+1, err)
		}
		loaded[row.Slug] = row
	}

	if _, exists := loaded[DefaultSlug]; !exists {
		return nil, fmt.Errorf("no %q profile defined", DefaultSlug)
	}
	return loaded, nil
}

func init() {
	var err error
	profiles, err = loadProfiles(profilesRawCSV)
	if err != nil {
		panic(err)
	}
}
