package urlx

import "strings"

// PageType classifies a URL by what kind of resource it points at.
type PageType string

// Page types returned by GetType.
const (
	TypeHTML       PageType = "html"
	TypeRSS        PageType = "rss"
	TypeCSS        PageType = "css"
	TypeJavaScript PageType = "javascript"
	TypeFont       PageType = "font"
	TypeUnknown    PageType = "unknown"
)

// extensionTypes maps unambiguous file extensions to a page type.
var extensionTypes = map[string]PageType{
	"html":  TypeHTML,
	"htm":   TypeHTML,
	"php":   TypeHTML,
	"aspx":  TypeHTML,
	"asp":   TypeHTML,
	"jsp":   TypeHTML,
	"xhtml": TypeHTML,
	"shtml": TypeHTML,
	"rss":   TypeRSS,
	"atom":  TypeRSS,
	"css":   TypeCSS,
	"js":    TypeJavaScript,
	"mjs":   TypeJavaScript,
	"woff":  TypeFont,
	"woff2": TypeFont,
	"ttf":   TypeFont,
	"otf":   TypeFont,
	"eot":   TypeFont,
}

// mediaExtensions are audio/video extensions excluded from page fetches.
var mediaExtensions = map[string]bool{
	"mp3": true, "mp4": true, "avi": true, "mkv": true, "webm": true,
	"mov": true, "wav": true, "flac": true, "ogg": true, "wma": true,
	"m4a": true, "m4v": true, "mpg": true, "mpeg": true, "wmv": true,
	"3gp": true, "rmvb": true,
}

// GetType classifies a URL by file extension when one is present and
// unambiguous. Extension-less domain-level URLs default to html,
// everything else to unknown.
func GetType(rawURL string) PageType {
	ext := pathExtension(rawURL)
	if ext != "" {
		if t, ok := extensionTypes[ext]; ok {
			return t
		}
		return TypeUnknown
	}

	if IsDomain(rawURL) {
		return TypeHTML
	}

	return TypeUnknown
}

// IsMediaLink reports whether the URL points at an audio/video file.
func IsMediaLink(rawURL string) bool {
	return mediaExtensions[pathExtension(rawURL)]
}

// IsLink reports whether the URL is a valid page link, i.e. a web link
// that is not a media asset.
func IsLink(rawURL string) bool {
	return IsWebLink(rawURL) && !IsMediaLink(rawURL)
}

// pathExtension returns the lowercased extension of the last path
// segment, or "" when the segment has none.
func pathExtension(rawURL string) string {
	p, ok := Parse(rawURL)
	if !ok || p.Path == "" {
		return ""
	}

	segment := p.Path
	if idx := strings.LastIndexAny(segment, `/\`); idx >= 0 {
		segment = segment[idx+1:]
	}

	dot := strings.LastIndex(segment, ".")
	if dot < 0 || dot == len(segment)-1 {
		return ""
	}

	return strings.ToLower(segment[dot+1:])
}
