package model

// LogFile is a registered log file. Definitions come from YAML files in the
// configured definition directories.
type LogFile struct {
	Name string `json:"name" gorm:"primaryKey" validate:"required,hostname_rfc1123"`
	Path string `json:"path" validate:"required,filepath"`
	// sqlite3 does not have a builtin datetime type
	CreatedAt int64 `json:"createdAt,omitempty" gorm:"autoCreateTime"`
	UpdatedAt int64 `json:"updatedAt,omitempty" gorm:"autoUpdateTime"`
}

// LogFileMeta holds the observed state of a registered file.
type LogFileMeta struct {
	Name         string `gorm:"primaryKey"`
	Size         int64
	Mtime        int64
	TailCount    int64
	LastTailedAt int64
	CreatedAt    int64 `gorm:"autoCreateTime"`
	UpdatedAt    int64 `gorm:"autoUpdateTime"`
}
