package vfs

import (
	"path/filepath"
	"strings"
)

// Kind is the semantic file category derived from a filename extension.
type Kind string

const (
	KindImage    Kind = "image"
	KindText     Kind = "text"
	KindDocument Kind = "document"
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindArchive  Kind = "archive"
	KindFile     Kind = "file"
	KindFolder   Kind = "folder"
)

// Previewable reports whether content of this kind can be rendered inline
// rather than only offered for download.
func (k Kind) Previewable() bool {
	switch k {
	case KindImage, KindText, KindDocument, KindVideo, KindAudio:
		return true
	}
	return false
}

// Classification is the (kind, mime, previewable) triple for a filename.
type Classification struct {
	Kind        Kind
	MIME        string
	Previewable bool
}

// byExtension maps lower-cased extensions to kind and MIME type.
var byExtension = map[string]struct {
	kind Kind
	mime string
}{
	// Images
	"jpg":  {KindImage, "image/jpeg"},
	"jpeg": {KindImage, "image/jpeg"},
	"png":  {KindImage, "image/png"},
	"gif":  {KindImage, "image/gif"},
	"bmp":  {KindImage, "image/bmp"},
	"webp": {KindImage, "image/webp"},
	"svg":  {KindImage, "image/svg+xml"},
	"ico":  {KindImage, "image/x-icon"},
	"tiff": {KindImage, "image/tiff"},

	// Text
	"txt":  {KindText, "text/plain"},
	"md":   {KindText, "text/markdown"},
	"log":  {KindText, "text/plain"},
	"csv":  {KindText, "text/csv"},
	"json": {KindText, "application/json"},
	"xml":  {KindText, "application/xml"},
	"yaml": {KindText, "application/yaml"},
	"yml":  {KindText, "application/yaml"},
	"toml": {KindText, "text/plain"},
	"html": {KindText, "text/html"},
	"css":  {KindText, "text/css"},
	"js":   {KindText, "text/javascript"},
	"ts":   {KindText, "text/plain"},
	"go":   {KindText, "text/plain"},
	"py":   {KindText, "text/plain"},
	"sh":   {KindText, "text/plain"},

	// Documents
	"pdf":  {KindDocument, "application/pdf"},
	"doc":  {KindDocument, "application/msword"},
	"docx": {KindDocument, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	"xls":  {KindDocument, "application/vnd.ms-excel"},
	"xlsx": {KindDocument, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	"ppt":  {KindDocument, "application/vnd.ms-powerpoint"},
	"pptx": {KindDocument, "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
	"odt":  {KindDocument, "application/vnd.oasis.opendocument.text"},
	"rtf":  {KindDocument, "application/rtf"},

	// Video
	"mp4":  {KindVideo, "video/mp4"},
	"mov":  {KindVideo, "video/quicktime"},
	"avi":  {KindVideo, "video/x-msvideo"},
	"mkv":  {KindVideo, "video/x-matroska"},
	"webm": {KindVideo, "video/webm"},

	// Audio
	"mp3":  {KindAudio, "audio/mpeg"},
	"wav":  {KindAudio, "audio/wav"},
	"ogg":  {KindAudio, "audio/ogg"},
	"flac": {KindAudio, "audio/flac"},
	"m4a":  {KindAudio, "audio/mp4"},

	// Archives
	"zip": {KindArchive, "application/zip"},
	"tar": {KindArchive, "application/x-tar"},
	"gz":  {KindArchive, "application/gzip"},
	"tgz": {KindArchive, "application/gzip"},
	"bz2": {KindArchive, "application/x-bzip2"},
	"xz":  {KindArchive, "application/x-xz"},
	"rar": {KindArchive, "application/vnd.rar"},
	"7z":  {KindArchive, "application/x-7z-compressed"},
	"zst": {KindArchive, "application/zstd"},
}

// Classify maps a filename to its kind, MIME type and previewability.
// Unknown extensions fall back to the generic file kind with an
// octet-stream MIME type. Directories never pass through here; callers
// assign the folder kind directly.
func Classify(name string) Classification {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if entry, ok := byExtension[ext]; ok {
		return Classification{Kind: entry.kind, MIME: entry.mime, Previewable: entry.kind.Previewable()}
	}
	return Classification{Kind: KindFile, MIME: "application/octet-stream"}
}
