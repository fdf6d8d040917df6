package vfs

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

// Download describes a downloadable file. The handler streams the bytes
// straight from Path; directories go through BuildArchive instead.
type Download struct {
	Name  string
	Path  string
	MIME  string
	IsDir bool
}

// OpenDownload resolves a path for download. For regular files the MIME
// type is sniffed from content, falling back to the extension table.
func (s *Sandbox) OpenDownload(path string) (*Download, error) {
	resolved, err := s.Resolve(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundf("path not found: %s", path)
		}
		return nil, IOf(err, "stat %s", path)
	}
	dl := &Download{Name: filepath.Base(resolved), Path: resolved, IsDir: info.IsDir()}
	if dl.IsDir {
		return dl, nil
	}
	if mtype, err := mimetype.DetectFile(resolved); err == nil {
		dl.MIME = mtype.String()
	} else {
		dl.MIME = Classify(dl.Name).MIME
	}
	return dl, nil
}

// Preview holds inline-renderable content for a previewable file.
type Preview struct {
	Name string
	Kind Kind
	MIME string
	Data []byte
}

// OpenPreview reads a file for inline rendering. Non-previewable kinds
// and directories are rejected with BadRequest, as is text content that
// does not decode as UTF-8.
func (s *Sandbox) OpenPreview(path string) (*Preview, error) {
	resolved, err := s.Resolve(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundf("path not found: %s", path)
		}
		return nil, IOf(err, "stat %s", path)
	}
	if info.IsDir() {
		return nil, BadRequestf("cannot preview a folder")
	}

	c := Classify(info.Name())
	if !c.Previewable {
		return nil, BadRequestf("preview not supported for %s files", c.Kind)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, IOf(err, "read %s", path)
	}
	if c.Kind == KindText && !utf8.Valid(data) {
		return nil, BadRequestf("file content is not valid text")
	}
	return &Preview{Name: info.Name(), Kind: c.Kind, MIME: c.MIME, Data: data}, nil
}
