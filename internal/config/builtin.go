package config

import "filenest/pkg/types"

func extensionRule(name string, extensions ...string) types.Rule {
	return types.Rule{Name: name, Extensions: extensions, Enabled: true}
}

func catchAll(name string) *types.Rule {
	return &types.Rule{Name: name, Enabled: true}
}

// BuiltinProfiles returns the canned use-case profiles. They are
// starting points: Store.Save writes them out like any user profile,
// after which they can be edited freely.
func BuiltinProfiles() []*Profile {
	defaultRules := []types.Rule{
		extensionRule("Images", ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".svg", ".webp", ".ico"),
		extensionRule("Documents", ".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".xls", ".xlsx", ".ppt", ".pptx"),
		extensionRule("Videos", ".mp4", ".mkv", ".mov", ".avi", ".wmv", ".flv", ".webm", ".m4v"),
		extensionRule("Audio", ".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a"),
		extensionRule("Archives", ".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz"),
		extensionRule("Software", ".exe", ".msi", ".dmg", ".pkg", ".deb", ".rpm", ".appimage"),
		extensionRule("Code", ".py", ".js", ".html", ".css", ".java", ".cpp", ".c", ".h", ".php", ".rb", ".go", ".rs"),
	}

	return []*Profile{
		{
			Name:            "default",
			Description:     "General purpose organization by file type",
			OrganizeBy:      ByExtension,
			Rules:           defaultRules,
			CatchAll:        catchAll("Others"),
			DuplicatePolicy: types.CollisionRename,
		},
		{
			Name:        "photographer",
			Description: "Photos and media, grouped by month",
			OrganizeBy:  ByMixed,
			Rules: []types.Rule{
				extensionRule("RAW", ".raw", ".cr2", ".cr3", ".nef", ".arw", ".dng", ".orf"),
				extensionRule("Photos", ".jpg", ".jpeg", ".png", ".heic", ".tiff", ".webp"),
				extensionRule("Videos", ".mp4", ".mov", ".avi", ".mkv"),
				extensionRule("Edits", ".psd", ".xcf", ".lrcat"),
			},
			CatchAll:          catchAll("Others"),
			CreateDateFolders: true,
			DuplicatePolicy:   types.CollisionRename,
		},
		{
			Name:        "developer",
			Description: "Code, archives, and installers",
			OrganizeBy:  ByExtension,
			Rules: []types.Rule{
				extensionRule("Code", ".go", ".rs", ".py", ".js", ".ts", ".c", ".h", ".cpp", ".java", ".rb", ".sh"),
				extensionRule("Configs", ".json", ".yaml", ".yml", ".toml", ".ini", ".env"),
				extensionRule("Archives", ".zip", ".tar", ".gz", ".tgz", ".xz", ".7z"),
				extensionRule("Installers", ".deb", ".rpm", ".pkg", ".msi", ".exe", ".appimage"),
				extensionRule("Documents", ".md", ".pdf", ".txt"),
			},
			CatchAll:        catchAll("Others"),
			ExcludePatterns: []string{"*.lock", "node_modules", ".git"},
			DuplicatePolicy: types.CollisionRename,
		},
		{
			Name:        "student",
			Description: "Academic documents and notes",
			OrganizeBy:  ByExtension,
			Rules: []types.Rule{
				extensionRule("Papers", ".pdf"),
				extensionRule("Essays", ".doc", ".docx", ".odt", ".txt", ".md"),
				extensionRule("Slides", ".ppt", ".pptx", ".key", ".odp"),
				extensionRule("Spreadsheets", ".xls", ".xlsx", ".csv", ".ods"),
				extensionRule("Images", ".jpg", ".jpeg", ".png", ".gif"),
			},
			CatchAll:        catchAll("Others"),
			DuplicatePolicy: types.CollisionRename,
		},
		{
			Name:        "business",
			Description: "Business documents with size buckets for archives",
			OrganizeBy:  ByMixed,
			Rules: []types.Rule{
				extensionRule("Contracts", ".pdf"),
				extensionRule("Documents", ".doc", ".docx", ".odt", ".rtf"),
				extensionRule("Spreadsheets", ".xls", ".xlsx", ".csv"),
				extensionRule("Presentations", ".ppt", ".pptx"),
				extensionRule("Archives", ".zip", ".rar", ".7z"),
			},
			CatchAll:          catchAll("Others"),
			CreateSizeFolders: true,
			DuplicatePolicy:   types.CollisionSkip,
		},
	}
}

// BuiltinProfile returns the canned profile with the given name, or nil.
func BuiltinProfile(name string) *Profile {
	for _, p := range BuiltinProfiles() {
		if p.Name == name {
			return p
		}
	}
	return nil
}
