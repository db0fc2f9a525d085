package models

// Request is built once from the command line and never modified during a run.
type Request struct {
	AccountName string
	AccountKey  string
	Container   string
	Path        string
	Destination string
	Recursive   bool
}

// RemoteObject is one entry of a container listing.
type RemoteObject struct {
	Name string
	Size int64
}

// DownloadResult only keeps running totals; per-object details are logged as
// each transfer finishes.
type DownloadResult struct {
	Container        string `json:"container"`
	SourcePath       string `json:"source_path"`
	TotalFiles       int    `json:"total_files"`
	TotalSizeBytes   int64  `json:"total_size_bytes"`
	TotalSizeHuman   string `json:"total_size_human"`
	OperationTime    string `json:"operation_time"`
	DownloadDuration string `json:"download_duration"`
}
