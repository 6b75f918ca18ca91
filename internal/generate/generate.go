package generate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cleverdata/asset-sync/internal/core"
	"github.com/spf13/afero"
)

// DefaultRefPrefix is where generated records expect the icons to live,
// relative to the assets root.
const DefaultRefPrefix = "../StreamHelperAssets/games/ssbu/stage_icon/"

var (
	iconPattern  = regexp.MustCompile(`^stage_2_(.+)\.png$`)
	apostrophes  = regexp.MustCompile(`['’]`)
	nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)
)

// skipped icons that are not real stages
var skipIcons = map[string]bool{"stage_2_Random.png": true}

// Slugify turns a display name into a file name stem: "Yoshi's Island" ->
// "yoshis-island", "Mario & Sonic" -> "mario-and-sonic".
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = apostrophes.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&", "and")
	s = nonAlnumRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

type Options struct {
	IconDir   string
	OutputDir string
	RefPrefix string
	Names     map[string]string // internal name -> display name
}

type Generated struct {
	Icon string
	Name string
	File string
}

// Stages writes one stage record per stage icon in IconDir. Icons without a
// display name keep their internal name.
func Stages(fs afero.Fs, opts Options) ([]Generated, error) {
	entries, err := afero.ReadDir(fs, opts.IconDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read icon directory: %w", err)
	}
	if err := fs.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var out []Generated
	for _, e := range entries {
		if e.IsDir() || skipIcons[e.Name()] {
			continue
		}
		m := iconPattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}

		display, ok := opts.Names[m[1]]
		if !ok {
			display = m[1]
		}

		rec, err := core.NewVariantRecord(display, core.RoleThumbnail, opts.RefPrefix+e.Name())
		if err != nil {
			return out, err
		}
		data, err := rec.Marshal()
		if err != nil {
			return out, err
		}

		file := Slugify(display) + ".json"
		if err := afero.WriteFile(fs, filepath.Join(opts.OutputDir, file), data, 0644); err != nil {
			return out, fmt.Errorf("failed to write %s: %w", file, err)
		}
		out = append(out, Generated{Icon: e.Name(), Name: display, File: file})
	}
	return out, nil
}
