// Package media describes the boot media a packed image can be written to.
package media

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
)

// Profile describes one kind of boot medium.
type Profile struct {
	Name string `csv:"name"`
	Slug string `csv:"slug"`

	// BytesPerSector gives the size of the medium's sectors. Packed images are
	// padded to a multiple of this.
	BytesPerSector uint `csv:"bytes_per_sector"`

	// TotalSectors is how many sectors the medium holds. 0 means the medium is
	// large enough that we don't care.
	TotalSectors uint   `csv:"total_sectors"`
	Notes        string `csv:"notes"`
}

// TotalSizeBytes gives the capacity of the medium in bytes, or 0 if it's
// unbounded.
func (p *Profile) TotalSizeBytes() int64 {
	return int64(p.BytesPerSector) * int64(p.TotalSectors)
}

////////////////////////////////////////////////////////////////////////////////

//go:embed media.csv
var mediaRawCSV string
var profiles map[string]Profile

// Get returns the profile for the medium with the given slug.
func Get(slug string) (Profile, error) {
	profile, ok := profiles[slug]
	if ok {
		return profile, nil
	}

	err := fmt.Errorf("no boot medium exists with slug %q", slug)
	return Profile{}, err
}

// All returns every known profile, sorted by slug.
func All() []Profile {
	result := make([]Profile, 0, len(profiles))
	for _, profile := range profiles {
		result = append(result, profile)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Slug < result[j].Slug })
	return result
}

func init() {
	csvReader := csv.NewReader(strings.NewReader(mediaRawCSV))
	csvReader.Comma = '|'

	var rows []Profile
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		panic(fmt.Errorf("failed to decode media table: %w", err))
	}

	profiles = make(map[string]Profile, len(rows))
	for i, row := range rows {
		if row.BytesPerSector == 0 {
			panic(fmt.Errorf("medium %q on row %d has no sector size", row.Slug, i+1))
		}

		_, exists := profiles[row.Slug]
		if exists {
			message := fmt.Errorf(
				"duplicate definition for medium %q found on row %d",
				row.Slug,
				i+1)
			panic(message)
		}
		profiles[row.Slug] = row
	}
}
