package model

import "time"

const (
	DefaultSnippetLanguage  = "python"
	DefaultSnippetStyle     = "friendly"
	DefaultSnippetUnitPrice = int64(100)

	// MaxUnitPrice is 9999.99 in cents.
	MaxUnitPrice = int64(999999)
)

// Languages lists the lexers a snippet can be highlighted with.
var Languages = map[string]string{
	"bash":       "Bash",
	"c":          "C",
	"cpp":        "C++",
	"css":        "CSS",
	"go":         "Go",
	"html":       "HTML",
	"java":       "Java",
	"javascript": "JavaScript",
	"json":       "JSON",
	"php":        "PHP",
	"python":     "Python",
	"ruby":       "Ruby",
	"rust":       "Rust",
	"sql":        "SQL",
	"text":       "Text only",
	"typescript": "TypeScript",
	"yaml":       "YAML",
}

// Styles lists the highlight styles a snippet can be rendered with.
var Styles = map[string]string{
	"default":         "default",
	"dracula":         "dracula",
	"emacs":           "emacs",
	"friendly":        "friendly",
	"github-dark":     "github-dark",
	"monokai":         "monokai",
	"native":          "native",
	"solarized-dark":  "solarized-dark",
	"solarized-light": "solarized-light",
	"vim":             "vim",
}

type Snippet struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"column:created;not null;autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
	Title     string    `gorm:"type:varchar(100);not null;default:''"`
	Code      string    `gorm:"type:text;not null"`
	UnitPrice int64     `gorm:"not null"`
	Linenos   bool      `gorm:"not null;default:false"`
	Language  string    `gorm:"type:varchar(100);not null;default:'python'"`
	Style     string    `gorm:"type:varchar(100);not null;default:'friendly'"`

	OwnerID *int64 `gorm:"index"`
	Owner   *User  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`

	CategoryID *int64           `gorm:"index"`
	Category   *SnippetCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`

	// 一覧・詳細取得時にだけ埋まる集計値
	TagCount int64 `gorm:"->;-:migration"`
}

// IsOwnedBy reports whether userID created the snippet.
func (s *Snippet) IsOwnedBy(userID int64) bool {
	return s.OwnerID != nil && *s.OwnerID == userID
}
