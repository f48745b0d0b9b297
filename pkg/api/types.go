package api

type ListFilesResponse = []GetFileResponse

type GetFileResponse struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	Mtime        int64  `json:"mtime"`
	TailCount    int64  `json:"tailCount"`
	LastTailedAt int64  `json:"lastTailedAt"`
	UpdatedAt    int64  `json:"updatedAt"`
}

// FileStat is the freshest observed state of a registered file.
type FileStat struct {
	Size  int64 `json:"size"`
	Mtime int64 `json:"mtime"`
}

type TailFileRequest struct {
	// N is the number of lines to return; 0 means the server default.
	N int `query:"n" validate:"min=0"`
}
