// Package catalog turns the service's raw file names into FileEntry values
// and provides the pure search and section filters over them.
package catalog

import "strings"

// DefaultIcon is used for extensions without a dedicated icon.
const DefaultIcon = "📄"

// NoExtension is reported for names without a '.'.
const NoExtension = "file"

// FileEntry is one catalog item. Every field besides Name is derived from
// Name by NewEntry and never set independently.
type FileEntry struct {
	Name      string
	Extension string
	Icon      string
	IsCode    bool
}

// NewEntry derives a FileEntry from a file name.
func NewEntry(name string) FileEntry {
	return FileEntry{
		Name:      name,
		Extension: Extension(name),
		Icon:      Icon(name),
		IsCode:    IsCode(name),
	}
}

// Extension returns the substring after the last '.', or "file" when the
// name has none. The case is preserved.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return NoExtension
	}
	return name[i+1:]
}

// Icon returns the icon for name's lowercased extension.
func Icon(name string) string {
	if icon, ok := iconMap[strings.ToLower(Extension(name))]; ok {
		return icon
	}
	return DefaultIcon
}

// IsCode reports whether name's lowercased extension is executable by the
// service.
func IsCode(name string) bool {
	_, ok := codeExtensions[strings.ToLower(Extension(name))]
	return ok
}

var iconMap = map[string]string{
	// Programming languages
	"js":    "📜",
	"ts":    "📘",
	"py":    "🐍",
	"java":  "☕",
	"cpp":   "⚙️",
	"cc":    "⚙️",
	"cxx":   "⚙️",
	"c":     "⚙️",
	"h":     "📋",
	"hpp":   "📋",
	"cs":    "🎯",
	"go":    "🔵",
	"rs":    "🦀",
	"rb":    "💎",
	"php":   "🐘",
	"swift": "🔶",
	"kt":    "🟣",
	"dart":  "🎯",
	"lua":   "🌙",
	"pl":    "🐪",
	"r":     "📊",
	// Web
	"html": "🌐",
	"css":  "🎨",
	"scss": "🎨",
	"sass": "🎨",
	"less": "🎨",
	"vue":  "💚",
	"jsx":  "⚛️",
	"tsx":  "⚛️",
	// Data & config
	"json":   "📋",
	"xml":    "📋",
	"yaml":   "📋",
	"yml":    "📋",
	"toml":   "📋",
	"ini":    "⚙️",
	"conf":   "⚙️",
	"config": "⚙️",
	// Documents
	"md":   "📝",
	"txt":  "📄",
	"pdf":  "📕",
	"doc":  "📘",
	"docx": "📘",
	// Shell
	"sh":   "🔧",
	"bash": "🔧",
	"zsh":  "🔧",
	"fish": "🐠",
	"bat":  "🔧",
	"cmd":  "🔧",
	"ps1":  "🔧",
	// Database
	"sql":    "🗄️",
	"db":     "🗄️",
	"sqlite": "🗄️",
	// Other
	"gitignore":  "🔒",
	"env":        "🔐",
	"dockerfile": "🐳",
	"makefile":   "🔨",
}

var codeExtensions = map[string]struct{}{
	"js": {}, "ts": {}, "py": {}, "java": {}, "cpp": {}, "cc": {}, "cxx": {}, "c": {}, "cs": {},
	"go": {}, "rs": {}, "rb": {}, "php": {}, "swift": {}, "kt": {}, "dart": {}, "sh": {},
	"bash": {}, "zsh": {}, "lua": {}, "pl": {}, "r": {}, "jsx": {}, "tsx": {},
}

// CodeExtensions returns the executable extensions.
func CodeExtensions() []string {
	out := make([]string, 0, len(codeExtensions))
	for ext := range codeExtensions {
		out = append(out, ext)
	}
	return out
}
