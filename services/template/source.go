package template

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/yargevad/filepathx"
)

const TemplatesDirFlag = "templates-dir"

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   TemplatesDirFlag,
			Usage:  "load templates from this directory instead of the embedded ones",
			EnvVar: "TEMPLATES_DIR",
		},
	)
}

// Source lists and reads template files by slash-separated relative path.
// Glob understands ** for any number of directories.
type Source interface {
	Glob(pattern string) ([]string, error)
	ReadFile(name string) ([]byte, error)
}

// NewSource returns the directory from the command line if one is set and
// embedded otherwise.
func NewSource(c *cli.Context, embedded fs.FS) Source {
	if dir := c.String(TemplatesDirFlag); dir != "" {
		return DirSource(dir)
	}
	return FSSource{FS: embedded}
}

type DirSource string

func (s DirSource) Glob(pattern string) ([]string, error) {
	matches, err := filepathx.Glob(filepath.Join(string(s), filepath.FromSlash(pattern)))
	if err != nil {
		return nil, err
	}
	res := make([]string, 0, len(matches))
	for _, m := range matches {
		rel, err := filepath.Rel(string(s), m)
		if err != nil {
			return nil, err
		}
		res = append(res, filepath.ToSlash(rel))
	}
	return res, nil
}

func (s DirSource) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(string(s), filepath.FromSlash(name)))
}

type FSSource struct {
	FS fs.FS
}

func (s FSSource) Glob(pattern string) ([]string, error) {
	i := strings.Index(pattern, "**")
	if i < 0 {
		return fs.Glob(s.FS, pattern)
	}
	root := strings.TrimSuffix(pattern[:i], "/")
	if root == "" {
		root = "."
	}
	rest := strings.TrimPrefix(pattern[i+2:], "/")
	var res []string
	err := fs.WalkDir(s.FS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := path.Match(rest, path.Base(p))
		if err != nil {
			return err
		}
		if ok {
			res = append(res, p)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return res, err
}

func (s FSSource) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(s.FS, name)
}
