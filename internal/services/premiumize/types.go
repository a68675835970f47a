package premiumize

import "encoding/json"

// StatusResult is returned by operations that only acknowledge success.
type StatusResult struct {
	Status  string `json:"status" validate:"eq=success"`
	Message string `json:"message,omitempty"`
}

// AccountInfo represents the account information
type AccountInfo struct {
	Status       string  `json:"status,omitempty"`
	CustomerID   int64   `json:"customer_id"`
	PremiumUntil int64   `json:"premium_until" validate:"gte=0"`
	LimitUsed    float64 `json:"limit_used" validate:"gte=0"`
	SpaceUsed    float64 `json:"space_used" validate:"gte=0"`
}

// EntryType is the discriminant of a folder content entry.
type EntryType string

const (
	EntryTypeFile   EntryType = "file"
	EntryTypeFolder EntryType = "folder"
)

// Entry is one item of a folder listing. Exactly one of File and Folder is
// set, matching Type.
type Entry struct {
	Type   EntryType `json:"type" validate:"oneof=file folder"`
	File   *File     `json:"-"`
	Folder *Folder   `json:"-"`
}

// ID returns the id of whichever variant is set.
func (e Entry) ID() string {
	switch e.Type {
	case EntryTypeFile:
		if e.File != nil {
			return e.File.ID
		}
	case EntryTypeFolder:
		if e.Folder != nil {
			return e.Folder.ID
		}
	}
	return ""
}

// Name returns the name of whichever variant is set.
func (e Entry) Name() string {
	switch e.Type {
	case EntryTypeFile:
		if e.File != nil {
			return e.File.Name
		}
	case EntryTypeFolder:
		if e.Folder != nil {
			return e.Folder.Name
		}
	}
	return ""
}

// MarshalJSON writes the variant that is set, flattened next to its type.
func (e Entry) MarshalJSON() ([]byte, error) {
	switch {
	case e.File != nil:
		return json.Marshal(struct {
			Type EntryType `json:"type"`
			*File
		}{e.Type, e.File})
	case e.Folder != nil:
		return json.Marshal(struct {
			Type EntryType `json:"type"`
			*Folder
		}{e.Type, e.Folder})
	default:
		return json.Marshal(struct {
			Type EntryType `json:"type"`
		}{e.Type})
	}
}

// File represents a stored file
type File struct {
	ID              string `json:"id" validate:"required"`
	Name            string `json:"name"`
	Size            int64  `json:"size" validate:"gte=0"`
	CreatedAt       int64  `json:"created_at"`
	MimeType        string `json:"mime_type,omitempty"`
	TranscodeStatus string `json:"transcode_status,omitempty"`
	Link            string `json:"link,omitempty"`
	StreamLink      string `json:"stream_link,omitempty"`
	VirusScan       string `json:"virus_scan,omitempty"`
}

// Folder represents a folder reference inside a listing
type Folder struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
}

// Breadcrumb is one step of the path to a listed folder.
type Breadcrumb struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// FolderList is the result of ListFolder
type FolderList struct {
	Status      string       `json:"status"`
	Content     []Entry      `json:"content" validate:"dive"`
	Breadcrumbs []Breadcrumb `json:"breadcrumbs,omitempty"`
	Name        string       `json:"name"`
	ParentID    string       `json:"parent_id,omitempty"`
	FolderID    string       `json:"folder_id,omitempty"`
}

// Files returns the file entries of the listing.
func (l *FolderList) Files() []File {
	var files []File
	for _, e := range l.Content {
		if e.Type == EntryTypeFile && e.File != nil {
			files = append(files, *e.File)
		}
	}
	return files
}

// Folders returns the folder entries of the listing.
func (l *FolderList) Folders() []Folder {
	var folders []Folder
	for _, e := range l.Content {
		if e.Type == EntryTypeFolder && e.Folder != nil {
			folders = append(folders, *e.Folder)
		}
	}
	return folders
}

// FolderSearch is the result of SearchFolders
type FolderSearch struct {
	Status  string  `json:"status"`
	Content []Entry `json:"content" validate:"dive"`
	Name    string  `json:"name,omitempty"`
}

// CreatedFolder is the result of CreateFolder
type CreatedFolder struct {
	Status string `json:"status"`
	ID     string `json:"id" validate:"required"`
}

// UploadInfo is the result of FolderUploadInfo
type UploadInfo struct {
	Status string `json:"status"`
	Token  string `json:"token" validate:"required"`
	URL    string `json:"url" validate:"required,url"`
}

// ListedItem is a file of the flat item listing
type ListedItem struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
	Size      int64  `json:"size" validate:"gte=0"`
	MimeType  string `json:"mime_type,omitempty"`
	VirusScan string `json:"virus_scan,omitempty"`
	Path      string `json:"path,omitempty"`
}

// ItemList is the result of ListAllItems
type ItemList struct {
	Status string       `json:"status"`
	Files  []ListedItem `json:"files" validate:"dive"`
}

// ItemDetails is the result of ItemDetails
type ItemDetails struct {
	ID           string  `json:"id" validate:"required"`
	Name         string  `json:"name"`
	Type         string  `json:"type,omitempty"`
	Size         int64   `json:"size" validate:"gte=0"`
	CreatedAt    int64   `json:"created_at"`
	FolderID     string  `json:"folder_id,omitempty"`
	ACodec       string  `json:"acodec,omitempty"`
	VCodec       string  `json:"vcodec,omitempty"`
	MimeType     string  `json:"mime_type,omitempty"`
	OpenSubtitle string  `json:"opensubtitles_hash,omitempty"`
	Resolution   string  `json:"resx,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
	Link         string  `json:"link,omitempty"`
	StreamLink   string  `json:"stream_link,omitempty"`
}

// ZipLocation is the result of GenerateZip
type ZipLocation struct {
	Status   string `json:"status"`
	Location string `json:"location" validate:"required,url"`
}

// CreatedTransfer is the result of CreateTransfer
type CreatedTransfer struct {
	Status string `json:"status"`
	Type   string `json:"type"`
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name,omitempty"`
}

// DirectDownloadFile is one file of a direct download
type DirectDownloadFile struct {
	Path            string `json:"path"`
	Size            int64  `json:"size" validate:"gte=0"`
	Link            string `json:"link"`
	StreamLink      string `json:"stream_link,omitempty"`
	TranscodeStatus string `json:"transcode_status,omitempty"`
}

// DirectDownload is the result of DirectDownload
type DirectDownload struct {
	Status   string               `json:"status"`
	Location string               `json:"location,omitempty"`
	Filename string               `json:"filename,omitempty"`
	Filesize int64                `json:"filesize,omitempty"`
	Content  []DirectDownloadFile `json:"content" validate:"dive"`
}

// Transfer represents a transfer
type Transfer struct {
	ID       string   `json:"id" validate:"required"`
	Name     string   `json:"name"`
	Message  string   `json:"message,omitempty"`
	Status   string   `json:"status"`
	Progress *float64 `json:"progress" validate:"omitempty,gte=0,lte=1"`
	Src      string   `json:"src,omitempty"`
	FolderID string   `json:"folder_id,omitempty"`
	FileID   string   `json:"file_id,omitempty"`
}

// IsFinished returns true once the transfer no longer runs
func (t *Transfer) IsFinished() bool {
	switch t.Status {
	case "finished", "seeding", "error", "deleted", "banned", "timeout":
		return true
	}
	return false
}

// TransferList is the result of ListTransfers
type TransferList struct {
	Status    string     `json:"status"`
	Transfers []Transfer `json:"transfers" validate:"dive"`
}

// CacheCheck is the result of CheckCache. The slices are parallel to the
// checked items.
type CacheCheck struct {
	Status     string   `json:"status"`
	Response   []bool   `json:"response"`
	Transcoded []bool   `json:"transcoded,omitempty"`
	Filename   []string `json:"filename,omitempty"`
	Filesize   []int64  `json:"filesize,omitempty"`
}

// Cached reports whether the item at index i is cached.
func (c *CacheCheck) Cached(i int) bool {
	return i >= 0 && i < len(c.Response) && c.Response[i]
}
